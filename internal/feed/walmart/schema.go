package walmart

// SchemaVersion is the Walmart marketplace item spec version the feed
// envelope declares.
const SchemaVersion = "3.2"

// ItemAttributes is the fixed target schema: every feed record carries
// exactly these attributes, in this presentation order.
var ItemAttributes = []string{
	"SKU",
	"Product ID Type",
	"Product ID",
	"Product Name",
	"Brand Name",
	"Price",
	"Description",
	"Main Image URL",
	"Inventory",
	"Shipping Weight",
	"Category",
}

// RequiredAttributes must resolve to a real value before a feed is
// exported. Presence is enforced by the caller, not the resolver, so
// partial preview resolution stays possible.
var RequiredAttributes = []string{
	"SKU",
	"Product ID Type",
	"Product ID",
	"Product Name",
	"Brand Name",
}
