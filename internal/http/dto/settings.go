package dto

import "github.com/cesargomez89/mediacache/internal/domain"

// SettingsRequest is the body of PUT /settings. Both fields are required;
// credentials are not inspected.
type SettingsRequest struct {
	Cookies *[]domain.Credential `json:"cookies"`
	Cache   *bool                `json:"cache"`
}

func (r *SettingsRequest) Validate() []ValidationError {
	var errs []ValidationError
	if r.Cookies == nil {
		errs = append(errs, ValidationError{Field: "cookies", Message: "must be an array"})
	}
	if r.Cache == nil {
		errs = append(errs, ValidationError{Field: "cache", Message: "must be a boolean"})
	}
	return errs
}

// ToSettings assumes Validate passed.
func (r *SettingsRequest) ToSettings() domain.Settings {
	return domain.Settings{Cookies: *r.Cookies, Cache: *r.Cache}
}
