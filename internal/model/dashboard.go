package model

// DashboardData aggregates the per-profile dashboard sections. The
// four reads race independently; a failed section leaves its slice nil
// and records the section name in Errors so the caller can decide the
// partial-failure behavior.
type DashboardData struct {
	Programs      []DashboardProgram   `json:"programs"`
	Activity      []ActivityItem       `json:"recentActivity"`
	Announcements []Announcement       `json:"announcements"`
	Bookmarks     []BookmarkedResource `json:"bookmarks"`
	Errors        []string             `json:"errors,omitempty"`
}
