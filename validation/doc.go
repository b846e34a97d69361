// Package validation validates configuration structs using struct tags.
//
// Field names in error messages follow the mapstructure tag (the key used in
// config files), falling back to the json tag and then to snake_case.
//
//	type APIConfig struct {
//	    BaseURL string `mapstructure:"base_url" validate:"required,url"`
//	    Key     string `mapstructure:"key" validate:"required"`
//	}
//	err := validation.Validate(cfg)
package validation
