package entity

// Session is the credential blob for the connected Facebook page. It is
// replaced wholesale on login/refresh and removed on logout; individual
// fields are never mutated in place.
type Session struct {
	AccessToken string `json:"access_token"`
	PageID      string `json:"page_id"`
	PageName    string `json:"page_name"`
}
