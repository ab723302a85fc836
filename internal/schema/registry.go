package schema

import "regexp"

// Named schemas, one per collection. The same contracts are declared as
// constraints in the database migration; this in-process layer exists to
// reject bad writes early with field-level detail.
const (
	Identity       = "identity"
	ItemDocument   = "item"
	StoreDocument  = "store"
	RecipeDocument = "recipe"
	TokenBlacklist = "token-blacklist"
)

var (
	ItemCategories = []string{"Dairy", "Vegetables", "Fruits", "Meat", "Grains", "Snacks", "Drinks", "Other"}
	ItemUnits      = []string{"pcs", "kg", "g", "liters", "ml", "pack", "bottle", "can", "box", "other"}
	StorageSpots   = []string{"Fridge", "Pantry", "Freezer"}
	Difficulties   = []string{"Easy", "Medium", "Hard"}

	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

func minimum(v float64) *float64 { return &v }

var registry = map[string]*Schema{
	Identity: {
		Name:     Identity,
		Required: []string{"email", "password", "name", "role"},
		Fields: map[string]Field{
			"email":      {Type: TypeString, Pattern: emailPattern},
			"password":   {Type: TypeString, MinLength: 6},
			"name":       {Type: TypeString, MinLength: 1},
			"role":       {Type: TypeString, Enum: []string{"user", "admin"}},
			"created_at": {Type: TypeDate},
		},
	},
	ItemDocument: {
		Name:     ItemDocument,
		Required: []string{"name", "category", "quantity", "unit", "storage_location", "price", "barcodes", "store_id"},
		Closed:   true,
		Fields: map[string]Field{
			"name":             {Type: TypeString, MinLength: 1},
			"category":         {Type: TypeString, Enum: ItemCategories},
			"quantity":         {Type: TypeInt, Minimum: minimum(1)},
			"unit":             {Type: TypeString, Enum: ItemUnits},
			"expiry_date":      {Type: TypeDate},
			"storage_location": {Type: TypeString, Enum: StorageSpots},
			"price":            {Type: TypeNumber, Minimum: minimum(0)},
			"barcodes": {Type: TypeArray, Items: &Schema{
				Name:     "barcode",
				Required: []string{"code"},
				Fields: map[string]Field{
					"code":     {Type: TypeString, MinLength: 1},
					"store_id": {Type: TypeID},
				},
			}},
			"store_id":       {Type: TypeID},
			"date_purchased": {Type: TypeDate},
		},
	},
	StoreDocument: {
		Name:     StoreDocument,
		Required: []string{"name", "location"},
		Closed:   true,
		Fields: map[string]Field{
			"name":           {Type: TypeString, MinLength: 1},
			"location":       {Type: TypeString, MinLength: 1},
			"contact_number": {Type: TypeString},
			"website":        {Type: TypeString},
		},
	},
	RecipeDocument: {
		Name:     RecipeDocument,
		Required: []string{"name", "servings", "prep_time", "cook_time", "ingredients", "steps", "difficulty"},
		Fields: map[string]Field{
			"name":        {Type: TypeString, MinLength: 1},
			"description": {Type: TypeString},
			"servings":    {Type: TypeInt, Minimum: minimum(1)},
			"prep_time":   {Type: TypeInt, Minimum: minimum(0)},
			"cook_time":   {Type: TypeInt, Minimum: minimum(0)},
			"ingredients": {Type: TypeArray, Items: &Schema{
				Name:     "ingredient",
				Required: []string{"item_id", "quantity", "unit"},
				Fields: map[string]Field{
					"item_id":  {Type: TypeID},
					"quantity": {Type: TypeNumber, Minimum: minimum(0)},
					"unit":     {Type: TypeString, MinLength: 1},
					"notes":    {Type: TypeString},
				},
			}},
			"steps": {Type: TypeArray, Items: &Schema{
				Name:     "step",
				Required: []string{"step_number", "description"},
				Fields: map[string]Field{
					"step_number": {Type: TypeInt, Minimum: minimum(1)},
					"description": {Type: TypeString, MinLength: 1},
					"duration":    {Type: TypeInt, Minimum: minimum(0)},
				},
			}},
			"categories": {Type: TypeArray},
			"difficulty": {Type: TypeString, Enum: Difficulties},
			"image_url":  {Type: TypeString},
			"rating":     {Type: TypeNumber, Minimum: minimum(1)},
			"notes":      {Type: TypeString},
		},
	},
	TokenBlacklist: {
		Name:     TokenBlacklist,
		Required: []string{"token", "expires_at"},
		Closed:   true,
		Fields: map[string]Field{
			"token":      {Type: TypeString, MinLength: 1},
			"expires_at": {Type: TypeDate},
		},
	},
}

// Lookup returns the named schema, or false when no such contract exists.
func Lookup(name string) (*Schema, bool) {
	s, ok := registry[name]
	return s, ok
}

// Validate checks doc against the named schema. An unknown schema name is a
// programming error and panics during development rather than silently
// letting unvalidated writes through.
func Validate(name string, doc map[string]any) error {
	s, ok := Lookup(name)
	if !ok {
		panic("schema: unknown schema " + name)
	}
	return s.Validate(doc)
}

// ValidatePartial checks only the supplied fields against the named schema.
func ValidatePartial(name string, doc map[string]any) error {
	s, ok := Lookup(name)
	if !ok {
		panic("schema: unknown schema " + name)
	}
	return s.ValidatePartial(doc)
}
