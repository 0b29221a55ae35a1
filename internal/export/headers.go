package export

// Headers is the eBay bulk-upload column set, in upload order. The first
// column's name doubles as the upload directive and must stay verbatim.
var Headers = []string{
	"*Action(SiteID=Germany|Country=DE|Currency=EUR|Version=1193)",
	"Custom label (SKU)",
	"Category ID",
	"Category name",
	"Title",
	"Relationship",
	"Relationship details",
	"Schedule Time",
	"P:EAN",
	"P:EPID",
	"Start price",
	"Quantity",
	"Item photo URL",
	"VideoID",
	"Condition ID",
	"Description",
	"Format",
	"Duration",
	"Buy It Now price",
	"Best Offer Enabled",
	"Best Offer Auto Accept Price",
	"Minimum Best Offer Price",
	"VAT%",
	"C:Marke",
	"C:Formulierung",
	"C:Wirksame Inhaltsstoffe",
	"C:Produktart",
	"C:Herstellernummer",
	"C:Anzahl der Tabletten",
	"C:Hauptverwendungszweck",
	"C:Inhaltsstoffe",
	"C:Versorgung",
	"Manufacturer Name",
	"Manufacturer AddressLine1",
	"Manufacturer City",
	"Manufacturer PostalCode",
	"Manufacturer Country",
}
