/*
 * errors.go, part of goff.
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

import "fmt"

//Each of the error kinds a parse can produce carries enough of the offending
//element to pinpoint the bad entry in the file. A parse either fully succeeds
//or fails with one of these (or a plain XML error); no partial ForceField is
//ever returned.

//MalformedParameterError reports a Parameter (or numeric attribute) whose
//value could not be read as a number, or that was declared in the section's
//unit table but given no value.
type MalformedParameterError struct {
	Section   string //the XML section, e.g. "BondTypes"
	Key       string //the identifier of the parent type entry
	Parameter string
	Raw       string //the offending text, empty if no value was given at all
}

func (err *MalformedParameterError) Error() string {
	if err.Raw == "" {
		return fmt.Sprintf("%s entry %q: no value given for parameter %q", err.Section, err.Key, err.Parameter)
	}
	return fmt.Sprintf("%s entry %q: parameter %q has non-numeric value %q", err.Section, err.Key, err.Parameter, err.Raw)
}

//UnitResolutionError reports a parameter for which no unit declaration exists,
//neither in the section's ParametersUnitDef table nor in the global unit system.
type UnitResolutionError struct {
	Section   string
	Key       string
	Parameter string
}

func (err *UnitResolutionError) Error() string {
	return fmt.Sprintf("%s entry %q: parameter %q has no unit declaration in scope", err.Section, err.Key, err.Parameter)
}

//DuplicateTypeError reports two entries of one collection that collide under
//the same canonical key.
type DuplicateTypeError struct {
	Collection string
	Key        string
	First      string //names of the colliding entries, possibly empty
	Second     string
}

func (err *DuplicateTypeError) Error() string {
	return fmt.Sprintf("Duplicate entries in %s for key %q (first declared as %q, again as %q)", err.Collection, err.Key, err.First, err.Second)
}
