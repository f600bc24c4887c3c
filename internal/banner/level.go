// Package banner renders classification banners into an HTML document.
//
// An Engine owns one document and its current Settings. Rendering removes
// every banner it previously inserted (nodes carrying MarkerClass) and
// inserts a fresh header/footer pair as the first and last children of
// <body>. Colors and positioning are left to the stylesheet; the engine
// only assigns the Variant class names.
package banner

// Level is a classification code such as "S-NF".
type Level string

const (
	LevelUnclassified     Level = "U"
	LevelUnclassifiedFOUO Level = "U-FOUO"
	LevelConfidentialNF   Level = "C-NF"
	LevelConfidential2P   Level = "C-2P"
	LevelSecretNF         Level = "S-NF"
	LevelSecret2P         Level = "S-2P"
	LevelTopSecretNF      Level = "TS-NF"
	LevelTopSecret2P      Level = "TS-2P"
)

// DynamicText is the ceiling disclaimer shown on pages whose content may
// change after load.
const DynamicText = "DYNAMIC PAGE - HIGHEST POSSIBLE CLASSIFICATION IS"

var labels = map[Level]string{
	LevelUnclassified:     "UNCLASSIFIED",
	LevelUnclassifiedFOUO: "UNCLASSIFIED//FOR OFFICIAL USE ONLY",
	LevelConfidentialNF:   "CONFIDENTIAL//NOFORN",
	LevelConfidential2P:   "CONFIDENTIAL//REL TO USA, AUS, CAN, GBR, NZL",
	LevelSecretNF:         "SECRET//NOFORN",
	LevelSecret2P:         "SECRET//REL TO USA, AUS, CAN, GBR, NZL",
	LevelTopSecretNF:      "TOP SECRET//NOFORN",
	LevelTopSecret2P:      "TOP SECRET//REL TO USA, AUS, CAN, GBR, NZL",
}

// Levels returns every recognized code, lowest family first.
func Levels() []Level {
	return []Level{
		LevelUnclassified,
		LevelUnclassifiedFOUO,
		LevelConfidentialNF,
		LevelConfidential2P,
		LevelSecretNF,
		LevelSecret2P,
		LevelTopSecretNF,
		LevelTopSecret2P,
	}
}

// Label returns the banner text for l. ok is false for codes outside the
// table, in which case the label is blank.
func (l Level) Label() (label string, ok bool) {
	label, ok = labels[l]
	return label, ok
}

// Family returns the classification family named by the code's first
// character, or FamilyUnknown.
func (l Level) Family() Family {
	if l == "" {
		return FamilyUnknown
	}
	switch f := Family(l[0]); f {
	case FamilyUnclassified, FamilyConfidential, FamilySecret, FamilyTopSecret:
		return f
	}
	return FamilyUnknown
}

// Family is the top-level category of a classification code.
type Family byte

const (
	FamilyUnknown      Family = 0
	FamilyUnclassified Family = 'U'
	FamilyConfidential Family = 'C'
	FamilySecret       Family = 'S'
	FamilyTopSecret    Family = 'T'
)

func (f Family) String() string {
	switch f {
	case FamilyUnclassified:
		return "UNCLASSIFIED"
	case FamilyConfidential:
		return "CONFIDENTIAL"
	case FamilySecret:
		return "SECRET"
	case FamilyTopSecret:
		return "TOP SECRET"
	default:
		return "UNKNOWN"
	}
}

// MarkerClass tags every node the engine inserts.
const MarkerClass = "classBanner"

// Variant is the style class selecting a banner's appearance. Each value
// must have a rule in the banner stylesheet.
type Variant string

const (
	VariantTopSecretOrange Variant = "TopSecret-Orange"
	VariantTopSecretYellow Variant = "TopSecret-Yellow"
	VariantSecret          Variant = "Secret"
	VariantConfidential    Variant = "Conf"
	VariantUnclassified    Variant = "U-FOUO"
	VariantDynamic         Variant = "Dynamic"
)

// Variants lists every style class the engine can emit.
func Variants() []Variant {
	return []Variant{
		VariantTopSecretOrange,
		VariantTopSecretYellow,
		VariantSecret,
		VariantConfidential,
		VariantUnclassified,
		VariantDynamic,
	}
}

// VariantFor returns the style class for a family. ok is false when the
// family is unknown, which means no classification banner is drawn.
func VariantFor(f Family, tsOrange bool) (v Variant, ok bool) {
	switch f {
	case FamilyTopSecret:
		if tsOrange {
			return VariantTopSecretOrange, true
		}
		return VariantTopSecretYellow, true
	case FamilySecret:
		return VariantSecret, true
	case FamilyConfidential:
		return VariantConfidential, true
	case FamilyUnclassified:
		return VariantUnclassified, true
	}
	return "", false
}
