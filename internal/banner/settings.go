package banner

import "encoding/json"

// Settings is the resolved configuration for one render pass.
type Settings struct {
	Level         Level `json:"level"`
	Dynamic       bool  `json:"dynamic"`
	DynamicBanner bool  `json:"dynamicBanner"`
	TSOrange      bool  `json:"tsOrange"`
}

// Defaults returns the settings used before any options are applied.
func Defaults() Settings {
	return Settings{Level: LevelUnclassifiedFOUO}
}

// Options is a partial Settings. Nil fields leave the previous value alone.
type Options struct {
	Level         *Level `json:"level,omitempty"`
	Dynamic       *bool  `json:"dynamic,omitempty"`
	DynamicBanner *bool  `json:"dynamicBanner,omitempty"`
	TSOrange      *bool  `json:"tsOrange,omitempty"`
}

// UnmarshalJSON decodes options while ignoring unknown keys, even when the
// enclosing decoder disallows them.
func (o *Options) UnmarshalJSON(data []byte) error {
	type plain Options
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*o = Options(p)
	return nil
}

// WithLevel returns a copy of o with Level set.
func (o Options) WithLevel(l Level) Options {
	o.Level = &l
	return o
}

// Merge returns o with every field set in other copied over it.
func (o Options) Merge(other Options) Options {
	if other.Level != nil {
		o.Level = other.Level
	}
	if other.Dynamic != nil {
		o.Dynamic = other.Dynamic
	}
	if other.DynamicBanner != nil {
		o.DynamicBanner = other.DynamicBanner
	}
	if other.TSOrange != nil {
		o.TSOrange = other.TSOrange
	}
	return o
}

// Resolve returns previous with every field present in overrides replaced.
// The level is not validated; an unknown code surfaces at render time.
func Resolve(previous Settings, overrides Options) Settings {
	s := previous
	if overrides.Level != nil {
		s.Level = *overrides.Level
	}
	if overrides.Dynamic != nil {
		s.Dynamic = *overrides.Dynamic
	}
	if overrides.DynamicBanner != nil {
		s.DynamicBanner = *overrides.DynamicBanner
	}
	if overrides.TSOrange != nil {
		s.TSOrange = *overrides.TSOrange
	}
	return s
}
