// Package directive binds classification banners to markup. A page opts in
// by putting data-classification attributes on any element, usually <body>:
//
//	<body data-classification="S-NF" data-classification-dynamic>
package directive

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/classbanner/internal/banner"
)

const (
	AttrLevel         = "data-classification"
	AttrDynamic       = "data-classification-dynamic"
	AttrDynamicBanner = "data-classification-dynamic-banner"
	AttrTSOrange      = "data-classification-ts-orange"
	AttrColorBanners  = "data-classification-color-banners"
	AttrMethod        = "data-classification-method"
)

// Options reads banner options off n. Boolean attributes present without a
// value count as true; unparsable values are an error.
func Options(n *html.Node) (banner.Options, error) {
	var opts banner.Options

	if v, ok := banner.Attr(n, AttrLevel); ok && strings.TrimSpace(v) != "" {
		opts = opts.WithLevel(banner.Level(strings.TrimSpace(v)))
	}

	flags := []struct {
		attr string
		dst  **bool
	}{
		{AttrDynamic, &opts.Dynamic},
		{AttrDynamicBanner, &opts.DynamicBanner},
		{AttrColorBanners, &opts.TSOrange},
		{AttrTSOrange, &opts.TSOrange},
	}
	for _, f := range flags {
		v, ok := banner.Attr(n, f.attr)
		if !ok {
			continue
		}
		b, err := parseBool(v)
		if err != nil {
			return banner.Options{}, fmt.Errorf("%s: %w", f.attr, err)
		}
		*f.dst = &b
	}

	return opts, nil
}

func parseBool(v string) (bool, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return true, nil
	}
	return strconv.ParseBool(v)
}

// Bind initialises e from the first element in its document carrying
// data-classification, with defaults underneath the attribute values, and
// then dispatches data-classification-method if present. Without such an
// element the engine is initialised from defaults alone.
//
// The follow-up method is validated before anything is drawn, so an
// invalid name leaves the document untouched.
func Bind(e *banner.Engine, defaults banner.Options) error {
	n := e.Document().FindAttr(AttrLevel)
	if n == nil {
		e.Init(defaults)
		return nil
	}

	opts, err := Options(n)
	if err != nil {
		return fmt.Errorf("directive: %w", err)
	}

	merged := defaults.Merge(opts)
	calls := []banner.Call{{Method: banner.MethodInit, Options: &merged}}
	if m, ok := banner.Attr(n, AttrMethod); ok {
		call := banner.Call{Method: strings.TrimSpace(m)}
		if merged.Level != nil {
			call.Level = *merged.Level
		}
		calls = append(calls, call)
	}

	return e.CallAll(calls)
}
