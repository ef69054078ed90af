package constant

const (
	DefaultCategory    = "Apartments"
	DefaultCity        = "Mogadishu"
	DefaultDescription = "No description provided."
	DefaultBedrooms    = 1
	DefaultBathrooms   = 1

	PhotoBucket       = "listing-photos"
	PhotoCacheSeconds = 3600
	MaxListingPhotos  = 6

	// PlaceholderURLFormat is keyed by listing id so the same listing always
	// resolves to the same image.
	PlaceholderURLFormat = "https://picsum.photos/seed/%s/400/300"

	HomePath           = "/"
	PropertyPathFormat = "/property/%s"
)

type ListingEventType string

const (
	ListingEventCreated ListingEventType = "listing.created"
	ListingEventUpdated ListingEventType = "listing.updated"
	ListingEventDeleted ListingEventType = "listing.deleted"
)

var Categories = []string{
	"Apartments",
	"Houses",
	"Commercial",
	"Hotel",
	"Rooms",
}

var MogadishuDistricts = []string{
	"Warta Nabada",
	"Hodan",
	"Howl-Wadag",
	"Hamar Weyne",
	"Hamar Jajab",
	"Abdiaziz",
	"Bondhere",
	"Shibis",
	"Shangani",
	"Waberi",
	"Wadajir",
	"Dharkenley",
	"Daynile",
	"Huriwa",
	"Karan",
	"Kaxda",
	"Yaqshid",
	"Darusalam",
	"Garasbaley",
	"Gubadley",
}
