// Copyright (c) 2026 The Credence developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import "github.com/credencelabs/credence/credence"

// stackedMap maintains maps in a stack.
// Each level inherits key/values of the levels below it, giving the state a
// save-restore/checkpoint-revert manner.
type stackedMap struct {
	src            func(key credence.Bytes32) ([]byte, bool, error)
	levels         []*level
	keyRevisionMap map[credence.Bytes32][]int
}

type level struct {
	kvs  map[credence.Bytes32][]byte
	keys []credence.Bytes32 // insertion order, for deterministic journal
}

func newStackedMap(src func(key credence.Bytes32) ([]byte, bool, error)) *stackedMap {
	return &stackedMap{
		src:            src,
		keyRevisionMap: make(map[credence.Bytes32][]int),
	}
}

// push pushes a new level on the stack and returns the depth before push.
func (sm *stackedMap) push() int {
	sm.levels = append(sm.levels, &level{kvs: make(map[credence.Bytes32][]byte)})
	return len(sm.levels) - 1
}

// popTo pops levels until the stack depth reaches depth, reverting all puts
// recorded by the popped levels.
func (sm *stackedMap) popTo(depth int) {
	for len(sm.levels) > depth {
		top := sm.levels[len(sm.levels)-1]
		for key := range top.kvs {
			revs := sm.keyRevisionMap[key]
			revs = revs[:len(revs)-1]
			if len(revs) == 0 {
				delete(sm.keyRevisionMap, key)
			} else {
				sm.keyRevisionMap[key] = revs
			}
		}
		sm.levels = sm.levels[:len(sm.levels)-1]
	}
}

func (sm *stackedMap) depth() int {
	return len(sm.levels)
}

// get returns the latest value put for key, falling back to the source map.
func (sm *stackedMap) get(key credence.Bytes32) ([]byte, bool, error) {
	if revs, ok := sm.keyRevisionMap[key]; ok {
		lvl := sm.levels[revs[len(revs)-1]]
		if v, ok := lvl.kvs[key]; ok {
			return v, true, nil
		}
	}
	return sm.src(key)
}

// put records key/value at the top level.
// It panics if the stack is empty.
func (sm *stackedMap) put(key credence.Bytes32, value []byte) {
	top := sm.levels[len(sm.levels)-1]
	if _, ok := top.kvs[key]; !ok {
		top.keys = append(top.keys, key)
	}
	top.kvs[key] = value

	rev := len(sm.levels) - 1
	revs := sm.keyRevisionMap[key]
	if len(revs) == 0 || revs[len(revs)-1] != rev {
		sm.keyRevisionMap[key] = append(revs, rev)
	}
}

// journal iterates all puts bottom-up in insertion order.
func (sm *stackedMap) journal(cb func(key credence.Bytes32, value []byte) error) error {
	for _, lvl := range sm.levels {
		for _, key := range lvl.keys {
			if err := cb(key, lvl.kvs[key]); err != nil {
				return err
			}
		}
	}
	return nil
}
