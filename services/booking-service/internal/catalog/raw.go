package catalog

// Raw types mirror the upstream company hierarchy the way the source stores
// it: entities plus junction rows. Assignment lists live on locations and
// services only; the parser inverts them to derive what each specialist can
// do and where. Pointer fields distinguish absent numeric values from zero.

type RawCompany struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Locations   []RawLocation   `json:"locations"`
	Services    []RawService    `json:"services"`
	Specialists []RawSpecialist `json:"specialists"`
}

type RawLocation struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Address       string `json:"address"`
	City          string `json:"city"`
	CountryRegion string `json:"countryRegion"`
	PostalCode    string `json:"postalCode"`
	Phone         string `json:"phone"`
	LocationType  string `json:"locationType"`
	// AssignedProfileIDs are the profile→location junction rows for this
	// location.
	AssignedProfileIDs []string `json:"assignedProfileIds"`
}

type RawService struct {
	ID             string       `json:"id"`
	Title          string       `json:"title"`
	Description    string       `json:"description"`
	PriceMin       *float64     `json:"priceMin"`
	PriceMax       *float64     `json:"priceMax"`
	Duration       *int         `json:"duration"`
	TechnicalBreak *int         `json:"technicalBreak"`
	ServiceType    string       `json:"serviceType"`
	Capacity       *int         `json:"capacity"`
	Category       *RawCategory `json:"category"`
	// LocationIDs are the service→location junction rows.
	LocationIDs []string `json:"locationIds"`
	// AssignedProfileIDs are the service→profile junction rows.
	AssignedProfileIDs []string `json:"assignedProfileIds"`
}

type RawCategory struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type RawSpecialist struct {
	ID        string         `json:"id"`
	FullName  string         `json:"fullName"`
	Email     string         `json:"email"`
	AvatarURL string         `json:"avatarUrl"`
	WorkHours []RawWorkHours `json:"workHours"`
}

type RawWorkHours struct {
	// CompanyID scopes the entry; specialists may keep hours for several
	// companies upstream.
	CompanyID string         `json:"companyId"`
	DayOfWeek *int           `json:"dayOfWeek"`
	StartTime string         `json:"startTime"`
	EndTime   string         `json:"endTime"`
	Breaks    []RawWorkBreak `json:"breaks"`
}

type RawWorkBreak struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}
