package common

// DefaultCookieName is the name of the session cookie issued by the API.
const DefaultCookieName = "loggy.auth"

// MaxSearchLength caps the free-text search term of the job list.
const MaxSearchLength = 200

// Job pipeline statuses, in dashboard order.
const (
	StatusWishlist  = "wishlist"
	StatusApplied   = "applied"
	StatusInterview = "interview"
	StatusRejected  = "rejected"
	StatusOffer     = "offer"
)

// Statuses lists every allowed job status.
var Statuses = []string{StatusWishlist, StatusApplied, StatusInterview, StatusRejected, StatusOffer}

// ApplicationSources lists every allowed job application source.
var ApplicationSources = []string{"posted", "unsolicited", "referral", "recruiter", "internal", "other"}

// DefaultApplicationSource is applied when a job is saved without a source.
const DefaultApplicationSource = "posted"
