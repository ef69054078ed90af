package listing

import "time"

func NewListingAppWithClock(app ListingApp, now func() time.Time) ListingApp {
	impl := app.(*listingAppImpl)
	impl.now = now
	return impl
}
