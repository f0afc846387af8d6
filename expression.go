/*
 * expression.go, part of goff.
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

	"github.com/rmera/goff/units"
)

//mathematical constants that appear in potential expressions but are not
//free variables
var exprConstants = map[string]bool{
	"pi": true,
	"E":  true,
}

//independentVars returns the free variables of a potential expression that
//are not among the entry's parameters: the identifiers in expr, minus
//function names (an identifier followed by an opening parenthesis), known
//constants and the keys of parameters. The result is sorted. For a harmonic
//bond "0.5*k*(r-r_eq)**2" with parameters k and r_eq this is just [r].
func independentVars(expr string, parameters map[string]units.Quantity) []string {
	found := make(map[string]bool)
	i := 0
	for i < len(expr) {
		c := expr[i]
		if !isIdentStart(c) {
			i++
			continue
		}
		start := i
		for i < len(expr) && isIdentPart(expr[i]) {
			i++
		}
		name := expr[start:i]
		//skip whitespace to see whether this is a function call
		j := i
		for j < len(expr) && expr[j] == ' ' {
			j++
		}
		if j < len(expr) && expr[j] == '(' {
			continue
		}
		if exprConstants[name] {
			continue
		}
		if _, isParam := parameters[name]; isParam {
			continue
		}
		found[name] = true
	}
	vars := make([]string, 0, len(found))
	for name := range found {
		vars = append(vars, name)
	}
	sort.Strings(vars)
	return vars
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
