package model

// Sentinel values substituted when an optional field cannot be extracted.
const (
	UnknownTitle      = "Unknown Title"
	UnknownOffice     = "Unknown Office"
	UnknownPhone      = "Unknown Phone"
	NoEmailProvided   = "No Email Provided"
	NoWebsiteProvided = "No Website Provided"
)

// FacultyRecord is one faculty member extracted from the target page.
// Name is mandatory; every other field carries a sentinel when absent.
type FacultyRecord struct {
	Name    string `json:"name"`
	Title   string `json:"title"`
	Office  string `json:"office"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Website string `json:"website"`
}

// ApplyFallbacks replaces every empty optional field with its sentinel.
func (r *FacultyRecord) ApplyFallbacks() {
	if r.Title == "" {
		r.Title = UnknownTitle
	}
	if r.Office == "" {
		r.Office = UnknownOffice
	}
	if r.Phone == "" {
		r.Phone = UnknownPhone
	}
	if r.Email == "" {
		r.Email = NoEmailProvided
	}
	if r.Website == "" {
		r.Website = NoWebsiteProvided
	}
}

// MissingFields lists the optional fields of r that hold a sentinel.
func (r *FacultyRecord) MissingFields() []string {
	missing := make([]string, 0)
	if r.Title == "" || r.Title == UnknownTitle {
		missing = append(missing, "title")
	}
	if r.Office == "" || r.Office == UnknownOffice {
		missing = append(missing, "office")
	}
	if r.Phone == "" || r.Phone == UnknownPhone {
		missing = append(missing, "phone")
	}
	if r.Email == "" || r.Email == NoEmailProvided {
		missing = append(missing, "email")
	}
	if r.Website == "" || r.Website == NoWebsiteProvided {
		missing = append(missing, "website")
	}
	return missing
}
