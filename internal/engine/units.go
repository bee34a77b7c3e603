package engine

import (
	"fmt"
)

// dimension groups units that convert into each other.
type dimension int

const (
	dimNone dimension = iota
	dimLength
	dimMass
	dimTime
	dimData
	dimTemperature
	dimCurrency
)

// unitDef describes one unit: its canonical display name, its dimension,
// and the factor to the dimension's base unit (m, kg, s, byte, USD).
// Temperature is affine and handled separately.
type unitDef struct {
	name   string
	dim    dimension
	factor float64
}

// unitTable maps every accepted spelling to its candidate units. Most
// words name exactly one unit; "pound"/"pounds" names both the currency
// and the mass unit and is disambiguated against the source dimension.
var unitTable = map[string][]unitDef{
	// length (base: meter)
	"m":      {{"m", dimLength, 1}},
	"meter":  {{"m", dimLength, 1}},
	"meters": {{"m", dimLength, 1}},
	"km":     {{"km", dimLength, 1000}},
	"cm":     {{"cm", dimLength, 0.01}},
	"mm":     {{"mm", dimLength, 0.001}},
	"mi":     {{"mi", dimLength, 1609.344}},
	"mile":   {{"mi", dimLength, 1609.344}},
	"miles":  {{"mi", dimLength, 1609.344}},
	"ft":     {{"ft", dimLength, 0.3048}},
	"foot":   {{"ft", dimLength, 0.3048}},
	"feet":   {{"ft", dimLength, 0.3048}},
	"yd":     {{"yd", dimLength, 0.9144}},
	"yard":   {{"yd", dimLength, 0.9144}},
	"yards":  {{"yd", dimLength, 0.9144}},
	"inch":   {{"inch", dimLength, 0.0254}},
	"inches": {{"inch", dimLength, 0.0254}},

	// mass (base: kilogram)
	"kg":     {{"kg", dimMass, 1}},
	"g":      {{"g", dimMass, 0.001}},
	"mg":     {{"mg", dimMass, 1e-6}},
	"lb":     {{"lb", dimMass, 0.45359237}},
	"lbs":    {{"lb", dimMass, 0.45359237}},
	"oz":     {{"oz", dimMass, 0.028349523125}},
	"ounce":  {{"oz", dimMass, 0.028349523125}},
	"ounces": {{"oz", dimMass, 0.028349523125}},

	// time (base: second)
	"s":       {{"s", dimTime, 1}},
	"sec":     {{"s", dimTime, 1}},
	"secs":    {{"s", dimTime, 1}},
	"seconds": {{"s", dimTime, 1}},
	"ms":      {{"ms", dimTime, 0.001}},
	"min":     {{"min", dimTime, 60}},
	"mins":    {{"min", dimTime, 60}},
	"minutes": {{"min", dimTime, 60}},
	"h":       {{"h", dimTime, 3600}},
	"hr":      {{"h", dimTime, 3600}},
	"hrs":     {{"h", dimTime, 3600}},
	"hours":   {{"h", dimTime, 3600}},
	"day":     {{"day", dimTime, 86400}},
	"days":    {{"day", dimTime, 86400}},

	// data (base: byte; decimal prefixes, plus binary spellings)
	"B":     {{"B", dimData, 1}},
	"byte":  {{"B", dimData, 1}},
	"bytes": {{"B", dimData, 1}},
	"KB":    {{"KB", dimData, 1e3}},
	"MB":    {{"MB", dimData, 1e6}},
	"GB":    {{"GB", dimData, 1e9}},
	"TB":    {{"TB", dimData, 1e12}},
	"KiB":   {{"KiB", dimData, 1024}},
	"MiB":   {{"MiB", dimData, 1048576}},
	"GiB":   {{"GiB", dimData, 1073741824}},

	// temperature (affine, factor unused)
	"C":          {{"C", dimTemperature, 0}},
	"celsius":    {{"C", dimTemperature, 0}},
	"F":          {{"F", dimTemperature, 0}},
	"fahrenheit": {{"F", dimTemperature, 0}},
	"K":          {{"K", dimTemperature, 0}},
	"kelvin":     {{"K", dimTemperature, 0}},

	// currency (base: USD, fixed reference rates)
	"USD":     {{"USD", dimCurrency, 1}},
	"usd":     {{"USD", dimCurrency, 1}},
	"dollar":  {{"USD", dimCurrency, 1}},
	"dollars": {{"USD", dimCurrency, 1}},
	"GBP":     {{"GBP", dimCurrency, 1.27}},
	"gbp":     {{"GBP", dimCurrency, 1.27}},
	"EUR":     {{"EUR", dimCurrency, 1.09}},
	"eur":     {{"EUR", dimCurrency, 1.09}},
	"euro":    {{"EUR", dimCurrency, 1.09}},
	"euros":   {{"EUR", dimCurrency, 1.09}},

	// ambiguous: currency when converting money, mass otherwise
	"pound":  {{"GBP", dimCurrency, 1.27}, {"lb", dimMass, 0.45359237}},
	"pounds": {{"GBP", dimCurrency, 1.27}, {"lb", dimMass, 0.45359237}},
}

// currencySymbol maps canonical currency names back to their symbol for
// rendering.
var currencySymbol = map[string]string{
	"USD": "$",
	"GBP": "£",
	"EUR": "€",
}

// symbolCurrency maps a literal prefix symbol to its canonical currency.
var symbolCurrency = map[string]string{
	"$": "USD",
	"£": "GBP",
	"€": "EUR",
}

// lookupUnit resolves word to a unit definition, preferring a candidate in
// the given dimension when the word is ambiguous.
func lookupUnit(word string, prefer dimension) (unitDef, bool) {
	cands, ok := unitTable[word]
	if !ok {
		return unitDef{}, false
	}
	for _, c := range cands {
		if c.dim == prefer {
			return c, true
		}
	}
	return cands[0], true
}

// isUnit reports whether word names any unit.
func isUnit(word string) bool {
	_, ok := unitTable[word]
	return ok
}

// convert converts v to the unit named by target. A dimensionless source
// just takes on the target unit. Mismatched dimensions fail with
// ErrUnitMismatch.
func convert(v Value, target string) (Value, error) {
	var srcDim = dimNone
	var src unitDef
	if v.Unit != "" {
		var ok bool
		src, ok = lookupUnit(v.Unit, dimNone)
		if !ok {
			return Value{}, fmt.Errorf("%w: %s", ErrUnknownUnit, v.Unit)
		}
		srcDim = src.dim
	}

	dst, ok := lookupUnit(target, srcDim)
	if !ok {
		return Value{}, fmt.Errorf("%w: %s", ErrUnknownUnit, target)
	}

	if srcDim == dimNone {
		return Value{Num: v.Num, Unit: dst.name}, nil
	}
	if src.dim != dst.dim {
		return Value{}, fmt.Errorf("%w: cannot convert %s to %s", ErrUnitMismatch, v.Unit, dst.name)
	}
	if src.dim == dimTemperature {
		return Value{Num: convertTemperature(v.Num, src.name, dst.name), Unit: dst.name}, nil
	}
	return Value{Num: v.Num * src.factor / dst.factor, Unit: dst.name}, nil
}

// convertTemperature converts between C, F and K through kelvin.
func convertTemperature(n float64, from, to string) float64 {
	var kelvin float64
	switch from {
	case "C":
		kelvin = n + 273.15
	case "F":
		kelvin = (n-32)*5/9 + 273.15
	default:
		kelvin = n
	}
	switch to {
	case "C":
		return kelvin - 273.15
	case "F":
		return (kelvin-273.15)*9/5 + 32
	default:
		return kelvin
	}
}
