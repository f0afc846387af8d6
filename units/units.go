/*
 * units.go, part of goff.
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

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

//dims holds the exponents of a unit over the base dimensions, in this order:
//mass, length, time, charge, temperature, amount and angle.
type dims [7]int

func (d dims) add(o dims) dims {
	var r dims
	for i := range d {
		r[i] = d[i] + o[i]
	}
	return r
}

func (d dims) sub(o dims) dims {
	var r dims
	for i := range d {
		r[i] = d[i] - o[i]
	}
	return r
}

func (d dims) mul(n int) dims {
	var r dims
	for i := range d {
		r[i] = d[i] * n
	}
	return r
}

//Unit is a physical unit: a label (as it appeared in the forcefield file), a
//scale factor to the internal base units (kg, m, s, C, K, mol, rad) and a
//dimension vector. The zero value is not valid; use Parse or Dimensionless.
type Unit struct {
	label string
	scale float64
	d     dims
}

//Dimensionless returns the unit of pure numbers.
func Dimensionless() Unit {
	return Unit{label: "dimensionless", scale: 1}
}

//String returns the unit as it was written in the source file.
func (u Unit) String() string {
	if u.label == "" {
		return "dimensionless"
	}
	return u.label
}

//Compatible returns whether a quantity in u can be converted to o,
//i.e. whether both have the same physical dimensions.
func (u Unit) Compatible(o Unit) bool {
	return u.d == o.d
}

//Mul returns the product unit of u and o.
func (u Unit) Mul(o Unit) Unit {
	return Unit{label: u.label + "*" + o.label, scale: u.scale * o.scale, d: u.d.add(o.d)}
}

//Div returns the quotient unit of u and o.
func (u Unit) Div(o Unit) Unit {
	return Unit{label: u.label + "/(" + o.label + ")", scale: u.scale / o.scale, d: u.d.sub(o.d)}
}

//Pow returns u raised to the integer power n.
func (u Unit) Pow(n int) Unit {
	return Unit{label: u.label + "**" + strconv.Itoa(n), scale: math.Pow(u.scale, float64(n)), d: u.d.mul(n)}
}

//The table of unit symbols understood by Parse. Scales are relative to
//kg, m, s, C, K, mol and rad. Energies are expressed over mass, length and
//time. kb and elementary_charge are physical constants that forcefield files
//use in unit position, so they live here too (the original unyt-based code
//falls back to physical constants when a symbol is not a unit).
var symbols = map[string]Unit{
	"dimensionless": {scale: 1},
	//mass
	"kg":  {scale: 1, d: dims{1, 0, 0, 0, 0, 0, 0}},
	"g":   {scale: 1e-3, d: dims{1, 0, 0, 0, 0, 0, 0}},
	"amu": {scale: AMU, d: dims{1, 0, 0, 0, 0, 0, 0}},
	//length
	"m":        {scale: 1, d: dims{0, 1, 0, 0, 0, 0, 0}},
	"nm":       {scale: 1e-9, d: dims{0, 1, 0, 0, 0, 0, 0}},
	"angstrom": {scale: 1e-10, d: dims{0, 1, 0, 0, 0, 0, 0}},
	"bohr":     {scale: Bohr2A * 1e-10, d: dims{0, 1, 0, 0, 0, 0, 0}},
	//time
	"s":  {scale: 1, d: dims{0, 0, 1, 0, 0, 0, 0}},
	"ps": {scale: 1e-12, d: dims{0, 0, 1, 0, 0, 0, 0}},
	"fs": {scale: 1e-15, d: dims{0, 0, 1, 0, 0, 0, 0}},
	//charge
	"C":                 {scale: 1, d: dims{0, 0, 0, 1, 0, 0, 0}},
	"coulomb":           {scale: 1, d: dims{0, 0, 0, 1, 0, 0, 0}},
	"elementary_charge": {scale: ECharg, d: dims{0, 0, 0, 1, 0, 0, 0}},
	//temperature
	"K": {scale: 1, d: dims{0, 0, 0, 0, 1, 0, 0}},
	//amount
	"mol": {scale: 1, d: dims{0, 0, 0, 0, 0, 1, 0}},
	//angle
	"rad":    {scale: 1, d: dims{0, 0, 0, 0, 0, 0, 1}},
	"radian": {scale: 1, d: dims{0, 0, 0, 0, 0, 0, 1}},
	"degree": {scale: Deg2Rad, d: dims{0, 0, 0, 0, 0, 0, 1}},
	//energy, as mass*length**2/time**2
	"J":    {scale: 1, d: dims{1, 2, -2, 0, 0, 0, 0}},
	"kJ":   {scale: 1e3, d: dims{1, 2, -2, 0, 0, 0, 0}},
	"cal":  {scale: Kcal2KJ, d: dims{1, 2, -2, 0, 0, 0, 0}},
	"kcal": {scale: Kcal2KJ * 1e3, d: dims{1, 2, -2, 0, 0, 0, 0}},
	//constants used in unit position
	"kb": {scale: KB, d: dims{1, 2, -2, 0, -1, 0, 0}},
}

//Parse reads a unit expression as found in forcefield XML files, such as
//"kcal/mol", "degree" or "kJ/(mol*nm**2)", and returns the corresponding Unit.
//An empty string parses to the dimensionless unit. The original spelling of
//the expression is preserved and returned by String.
func Parse(expr string) (Unit, error) {
	s := strings.TrimSpace(expr)
	if s == "" {
		return Dimensionless(), nil
	}
	p := &uparser{in: s}
	u, err := p.parseExpr()
	if err != nil {
		return Unit{}, err
	}
	if p.pos != len(p.in) {
		return Unit{}, fmt.Errorf("Malformed unit expression %q: unexpected %q", expr, p.in[p.pos:])
	}
	u.label = s
	return u, nil
}

//a small recursive-descent parser for unit expressions
type uparser struct {
	in  string
	pos int
}

func (p *uparser) skipSpaces() {
	for p.pos < len(p.in) && p.in[p.pos] == ' ' {
		p.pos++
	}
}

func (p *uparser) parseExpr() (Unit, error) {
	u, err := p.parseTerm()
	if err != nil {
		return Unit{}, err
	}
	for {
		p.skipSpaces()
		if p.pos >= len(p.in) {
			return u, nil
		}
		switch p.in[p.pos] {
		case '*':
			//could also be the start of a "**" belonging to the term parser,
			//but parseTerm consumes those before returning, so a '*' here is
			//always a product.
			p.pos++
			t, err := p.parseTerm()
			if err != nil {
				return Unit{}, err
			}
			u = u.Mul(t)
		case '/':
			p.pos++
			t, err := p.parseTerm()
			if err != nil {
				return Unit{}, err
			}
			u = u.Div(t)
		default:
			return u, nil
		}
	}
}

func (p *uparser) parseTerm() (Unit, error) {
	p.skipSpaces()
	if p.pos >= len(p.in) {
		return Unit{}, fmt.Errorf("Malformed unit expression %q: unexpected end", p.in)
	}
	var u Unit
	var err error
	if p.in[p.pos] == '(' {
		p.pos++
		u, err = p.parseExpr()
		if err != nil {
			return Unit{}, err
		}
		p.skipSpaces()
		if p.pos >= len(p.in) || p.in[p.pos] != ')' {
			return Unit{}, fmt.Errorf("Malformed unit expression %q: missing ')'", p.in)
		}
		p.pos++
	} else {
		start := p.pos
		for p.pos < len(p.in) && (isAlpha(p.in[p.pos]) || p.in[p.pos] == '_') {
			p.pos++
		}
		name := p.in[start:p.pos]
		if name == "" {
			return Unit{}, fmt.Errorf("Malformed unit expression %q: expected a unit symbol at position %d", p.in, start)
		}
		var ok bool
		u, ok = symbols[name]
		if !ok {
			return Unit{}, fmt.Errorf("Unknown unit symbol %q in %q", name, p.in)
		}
		u.label = name
	}
	//optional integer exponent, "**n" or "^n"
	p.skipSpaces()
	if strings.HasPrefix(p.in[p.pos:], "**") {
		p.pos += 2
	} else if p.pos < len(p.in) && p.in[p.pos] == '^' {
		p.pos++
	} else {
		return u, nil
	}
	p.skipSpaces()
	start := p.pos
	if p.pos < len(p.in) && (p.in[p.pos] == '-' || p.in[p.pos] == '+') {
		p.pos++
	}
	for p.pos < len(p.in) && p.in[p.pos] >= '0' && p.in[p.pos] <= '9' {
		p.pos++
	}
	n, err := strconv.Atoi(p.in[start:p.pos])
	if err != nil {
		return Unit{}, fmt.Errorf("Malformed exponent in unit expression %q", p.in)
	}
	return u.Pow(n), nil
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

//Quantity is a numeric value tagged with a physical unit. Most forcefield
//parameters are scalars; the few array-valued ones carry their values in
//Array and leave Value at zero.
type Quantity struct {
	Value float64
	Array []float64 //nil unless the quantity is array-valued
	Unit  Unit
}

//NewQuantity returns a scalar quantity of value v in unit u.
func NewQuantity(v float64, u Unit) Quantity {
	return Quantity{Value: v, Unit: u}
}

//NewArrayQuantity returns an array-valued quantity in unit u.
//The slice is not copied.
func NewArrayQuantity(v []float64, u Unit) Quantity {
	return Quantity{Array: v, Unit: u}
}

//IsArray returns whether the quantity is array-valued.
func (q Quantity) IsArray() bool {
	return q.Array != nil
}

//In converts the quantity to the target unit. It returns an error if the
//dimensions of both units differ.
func (q Quantity) In(target Unit) (Quantity, error) {
	if !q.Unit.Compatible(target) {
		return Quantity{}, fmt.Errorf("Can't convert %s to %s: incompatible dimensions", q.Unit, target)
	}
	f := q.Unit.scale / target.scale
	if q.IsArray() {
		conv := make([]float64, len(q.Array))
		for i, v := range q.Array {
			conv[i] = v * f
		}
		return Quantity{Array: conv, Unit: target}, nil
	}
	return Quantity{Value: q.Value * f, Unit: target}, nil
}

//Mul returns the product of two scalar quantities.
func (q Quantity) Mul(o Quantity) Quantity {
	return Quantity{Value: q.Value * o.Value, Unit: q.Unit.Mul(o.Unit)}
}

//Div returns the quotient of two scalar quantities.
func (q Quantity) Div(o Quantity) Quantity {
	return Quantity{Value: q.Value / o.Value, Unit: q.Unit.Div(o.Unit)}
}

//Equal returns whether q and o represent the same physical quantity within
//the absolute tolerance tol, converting o to the unit of q first. Quantities
//with incompatible dimensions, or a scalar and an array, are never equal.
func (q Quantity) Equal(o Quantity, tol float64) bool {
	if !q.Unit.Compatible(o.Unit) || q.IsArray() != o.IsArray() {
		return false
	}
	conv, err := o.In(q.Unit)
	if err != nil {
		return false
	}
	if q.IsArray() {
		if len(q.Array) != len(conv.Array) {
			return false
		}
		return floats.EqualApprox(q.Array, conv.Array, tol)
	}
	return scalar.EqualWithinAbs(q.Value, conv.Value, tol)
}

func (q Quantity) String() string {
	if q.IsArray() {
		return fmt.Sprintf("%v %s", q.Array, q.Unit)
	}
	return fmt.Sprintf("%g %s", q.Value, q.Unit)
}
