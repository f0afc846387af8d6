/*
 * conversion.go, part of goff.
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

package units

//This provides useful conversion factors and physical constants

//Conversions
const (
	Deg2Rad = 0.0174533
	Rad2Deg = 1 / 0.0174533
	KJ2Kcal = 1 / 4.184
	Kcal2KJ = 4.184
	A2Bohr  = 1.889725989
	Bohr2A  = 1 / 1.889725989
)

//Physical constants, SI
const (
	KB     = 1.380649e-23      //Boltzmann constant, J/K
	ECharg = 1.602176634e-19   //elementary charge, C
	NA     = 6.02214076e23     //Avogadro number, 1/mol
	AMU    = 1.66053906660e-27 //atomic mass unit, kg
)
