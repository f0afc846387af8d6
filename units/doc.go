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

/*Package units provides quantities, i.e. numbers with an associated physical unit,
for the goff forcefield library. Units are parsed from the strings used in forcefield
XML files ("kcal/mol", "nm**2", "kJ/(mol*nm**2)" and so on) into a scale factor plus
a dimension vector, so quantities can be converted between compatible units and
multiplied/divided while keeping track of dimensions. The set of supported unit symbols
covers what appears in the forcefield files goff deals with, plus a couple of physical
constants (kb, elementary_charge) that those files use as if they were units.*/
package units
