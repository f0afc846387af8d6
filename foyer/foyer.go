/*
 * foyer.go, part of goff.
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

/*Package foyer holds the Foyer forcefield object model and the exporter that
translates a parsed ff.ForceField into it. The translation remaps field names
(r_eq becomes length, theta_eq becomes angle, and so on), splits atom types
into their per-type and nonbonded records, and maps the combining rule to the
Foyer vocabulary. Quantities keep the units they were parsed with: relabeling,
never conversion.*/
package foyer

import (
	"github.com/rmera/goff/units"
)

//ForceField is a forcefield in the Foyer object model.
type ForceField struct {
	Name           string
	Version        string
	CombiningRule  string
	Coulomb14Scale float64
	LJ14Scale      float64
	AtomTypes         []*Type
	NonBonded         []*NonBonded
	HarmonicBonds     []*Bond
	HarmonicAngles    []*Angle
	RBTorsions        []*RBTorsion
	PeriodicTorsions  []*PeriodicTorsion
	PeriodicImpropers []*PeriodicTorsion
}

//Type is a Foyer atom type record.
type Type struct {
	Name      string
	Class     string
	Element   string
	Mass      units.Quantity
	Def       string //SMARTS definition
	Desc      string
	DOI       string
	Overrides []string //sorted
}

//NonBonded holds the nonbonded parameters of one atom type.
type NonBonded struct {
	AtomType string
	Charge   units.Quantity
	Sigma    units.Quantity
	Epsilon  units.Quantity
	Extra    map[string]units.Quantity //parameters with no Foyer field, carried through
}

//Bond is a harmonic bond record. Either the Class or the Type fields are
//set, never both, matching the source entry.
type Bond struct {
	Class1, Class2 string
	Type1, Type2   string
	Length         units.Quantity
	K              units.Quantity
	Extra          map[string]units.Quantity
}

//Angle is a harmonic angle record.
type Angle struct {
	Class1, Class2, Class3 string
	Type1, Type2, Type3    string
	Angle                  units.Quantity
	K                      units.Quantity
	Extra                  map[string]units.Quantity
}

//RBTorsion is a Ryckaert-Bellemans torsion record.
type RBTorsion struct {
	Class1, Class2, Class3, Class4 string
	Type1, Type2, Type3, Type4     string
	C0, C1, C2, C3, C4, C5         units.Quantity
	Extra                          map[string]units.Quantity
}

//PeriodicTorsion is a periodic (cosine) torsion record, proper or improper.
type PeriodicTorsion struct {
	Class1, Class2, Class3, Class4 string
	Type1, Type2, Type3, Type4     string
	K                              units.Quantity
	Phase                          units.Quantity
	Periodicity                    units.Quantity
	Extra                          map[string]units.Quantity
}
