/*
 * registry.go, part of goff.
 *
 * Copyright 2022 Raul Mera <rmera{at}usachDOTcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 * goff is developed at the Universidad de Santiago de Chile
 * (USACH)
 *
 */

package ff

import (
	"sort"
	"strings"
)

//The separator used to join member tuples into canonical registry keys.
//It can't appear in atom-class or atom-type names.
const keySeparator = "~"

//typeRegistry holds the bonded types of one collection, keyed by their
//member tuple. Symmetric collections (bonds, angles, pair potentials)
//canonicalize the tuple so that both orientations collide; directional
//collections (dihedrals, impropers) keep the tuple as declared and index the
//reversed tuple as an alias, unless a distinct entry was declared for the
//reversed tuple, in which case that entry keeps the key.
type typeRegistry struct {
	collection string //for error messages, e.g. "BondTypes"
	symmetric  bool
	order      []string //canonical keys of explicit entries, in insertion order
	entries    map[string]*regEntry
}

type regEntry struct {
	rec      *BondedType
	explicit bool //false for a reverse alias of a directional entry
}

func newTypeRegistry(collection string, symmetric bool) *typeRegistry {
	r := new(typeRegistry)
	r.collection = collection
	r.symmetric = symmetric
	r.entries = make(map[string]*regEntry)
	return r
}

func reversed(members []string) []string {
	r := make([]string, len(members))
	for i, m := range members {
		r[len(members)-1-i] = m
	}
	return r
}

//canonicalKey joins the tuple into a registry key. For symmetric collections
//the orientation with the lexicographically smaller end goes first, so (A,B)
//and (B,A) produce the same key.
func canonicalKey(members []string, symmetric bool) string {
	if !symmetric {
		return strings.Join(members, keySeparator)
	}
	rev := reversed(members)
	for i := range members {
		if members[i] < rev[i] {
			break
		}
		if members[i] > rev[i] {
			members = rev
			break
		}
	}
	return strings.Join(members, keySeparator)
}

//register adds rec to the registry. Registering a second entry under an
//already-taken canonical key returns a DuplicateTypeError and leaves the
//first entry in place.
func (r *typeRegistry) register(rec *BondedType) error {
	key := canonicalKey(rec.Members, r.symmetric)
	if prev, ok := r.entries[key]; ok && prev.explicit {
		return &DuplicateTypeError{Collection: r.collection, Key: key, First: prev.rec.Name, Second: rec.Name}
	}
	//An explicit declaration takes the key over a mere reverse alias.
	r.entries[key] = &regEntry{rec: rec, explicit: true}
	r.order = append(r.order, key)
	if !r.symmetric {
		rkey := strings.Join(reversed(rec.Members), keySeparator)
		if rkey != key {
			if _, taken := r.entries[rkey]; !taken {
				r.entries[rkey] = &regEntry{rec: rec}
			}
			//if the reversed key is taken, whoever holds it wins and no
			//alias is created
		}
	}
	return nil
}

//lookup returns the entry for the given member tuple, nil if there is none.
func (r *typeRegistry) lookup(members []string) *BondedType {
	e, ok := r.entries[canonicalKey(members, r.symmetric)]
	if !ok {
		return nil
	}
	return e.rec
}

//records returns the explicitly declared entries, in insertion order.
func (r *typeRegistry) records() []*BondedType {
	ret := make([]*BondedType, len(r.order))
	for i, key := range r.order {
		ret[i] = r.entries[key].rec
	}
	return ret
}

func (r *typeRegistry) len() int {
	return len(r.order)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
