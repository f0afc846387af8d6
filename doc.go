/*
 * doc.go, part of goff.
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
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

/*Package ff reads forcefield parameter files written in the GMSO XML dialect into
an in-memory, unit-aware forcefield object.


	**goff Capabilities**

    Parses forcefield XML files: atom types, bond, angle, dihedral, improper and
	pair-potential types, with per-section potential expressions and
	per-parameter unit declarations.

    Every numeric parameter becomes a quantity (value plus unit, see the units
	subpackage), resolved against the nearest unit declaration in scope.

    Bond and angle types can be looked up with their atom classes in either
	order; dihedral and improper types are direction-sensitive, with the
	reversed tuple answering only when no entry was declared for it explicitly.

    Duplicate type declarations, unresolvable units, non-numeric parameter
	values and similar problems abort the whole parse with an error that names
	the offending entry. A partially-parsed forcefield is never returned.

    Writes the parsed forcefield back to the same XML dialect, such that
	re-parsing the output reproduces the object graph.

    Loads forcefield files (plain or zstd-compressed) by name or path, with
	caching and registration of custom files (see Loader).

    Exports the parsed forcefield to the Foyer object model (see the foyer
	subpackage).

The whole pipeline is a pure function from XML text to object graph: each parse
builds its own registries, so concurrent parses of different files need no
locking.*/
package ff
