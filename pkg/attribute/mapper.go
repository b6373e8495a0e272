/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package attribute

import (
	"fmt"

	"github.com/idcontact/irma-bridge/pkg/irma"
)

// Mapping maps a logical attribute name to the ordered set of IRMA attribute
// identifiers that are acceptable for it. Every logical name used in a
// request must have a non-empty identifier set.
type Mapping map[string][]string

// UnknownAttributeError is returned when a requested logical attribute name
// has no configured identifier set.
type UnknownAttributeError struct {
	Name string
}

func (e *UnknownAttributeError) Error() string {
	return fmt.Sprintf("unknown attribute %q", e.Name)
}

// Mapper translates logical attribute names into the IRMA
// conjunction/disjunction request structure.
type Mapper struct {
	mapping Mapping
}

// NewMapper returns a new Mapper instance.
func NewMapper(mapping Mapping) *Mapper {
	return &Mapper{
		mapping: mapping,
	}
}

// MapAttributes builds the disclosure structure for the given logical names:
// one disjunction per name, preserving input order, each offering a
// single-attribute conjunction per acceptable identifier. The result
// validator relies on this positional correspondence. Fails on the first
// unmapped name with no partial result.
func (m *Mapper) MapAttributes(names []string) (irma.ConDisCon, error) {
	condiscon := make(irma.ConDisCon, 0, len(names))

	for _, name := range names {
		ids, ok := m.mapping[name]
		if !ok || len(ids) == 0 {
			return nil, &UnknownAttributeError{Name: name}
		}

		dis := make([][]string, 0, len(ids))

		for _, id := range ids {
			dis = append(dis, []string{id})
		}

		condiscon = append(condiscon, dis)
	}

	return condiscon, nil
}
