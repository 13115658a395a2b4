package models

// Field is the logical name of a study column, independent of the header used in the workbook.
type Field string

// Logical fields known to the column resolver.
const (
	FieldCoordinates Field = "coord"
	FieldReference   Field = "ref"
	FieldName        Field = "name"
	FieldUnitPrice   Field = "unit_price"
	FieldPrice       Field = "price"
	FieldTypology    Field = "typology"
	FieldTier        Field = "tier"
	FieldZone        Field = "zone"
	FieldCity        Field = "city"
	FieldFloor       Field = "floor"
	FieldBedrooms    Field = "bedrooms"
)

// FilterFields lists the categorical fields the dashboard offers filters for, in display order.
var FilterFields = []Field{FieldTypology, FieldTier, FieldZone, FieldCity, FieldFloor, FieldBedrooms}

// Unit is one sellable housing unit, a single data row of the study sheet.
type Unit struct {
	Reference   string           // Reference of the development the unit belongs to.
	Name        string           // Commercial name of the development, if any.
	Coordinates Coordinates      // Parsed location of the unit.
	Values      map[Field]string // Raw cell values keyed by logical field.
}

// Value returns the raw cell value for a field, or an empty string.
func (u Unit) Value(field Field) string {
	return u.Values[field]
}
