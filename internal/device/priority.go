package device

import (
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// Category classifies a device's hardware form factor.
type Category int

const (
	// CategoryPhone is the default category
	CategoryPhone Category = iota
	// CategoryTablet covers tablets and foldables
	CategoryTablet
	// CategoryWear covers watches and other wearables
	CategoryWear
	// CategoryTV covers television devices
	CategoryTV
	// CategoryAutomotive covers in-car devices
	CategoryAutomotive
	// CategoryDesktop covers desktop and freeform profiles
	CategoryDesktop
)

// String returns a human-readable name for the category
func (c Category) String() string {
	switch c {
	case CategoryPhone:
		return "Phone"
	case CategoryTablet:
		return "Tablet"
	case CategoryWear:
		return "Wear"
	case CategoryTV:
		return "TV"
	case CategoryAutomotive:
		return "Automotive"
	case CategoryDesktop:
		return "Desktop"
	default:
		return "Unknown"
	}
}

// Categorize classifies a device from its raw identifier and display
// name using substring heuristics over the lower-cased concatenation.
// Tablet indicators are checked before the phone default so a name like
// "Pixel Tablet" is not misread as a phone by its brand.
func Categorize(id, name string) Category {
	combined := strings.ToLower(id + " " + name)

	switch {
	case containsAny(combined, "tablet", "pad", "fold"):
		return CategoryTablet
	case containsAny(combined, "wear", "watch"):
		return CategoryWear
	case containsAny(combined, "tv"):
		return CategoryTV
	case containsAny(combined, "automotive", "auto", "car"):
		return CategoryAutomotive
	case containsAny(combined, "desktop", "freeform"):
		return CategoryDesktop
	default:
		return CategoryPhone
	}
}

func containsAny(s string, substrs ...string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// Per-category priority bases. Lower sorts earlier, so phones lead,
// then tablets, TVs, wearables, automotive, and everything else.
const (
	priorityPixelUnversioned = 25
	basePhone                = 30
	baseTablet               = 100
	baseTV                   = 200
	baseWear                 = 300
	baseAutomotive           = 400
	baseOther                = 500
	priorityUnknown          = 999

	versionCeiling = 50
)

// extractVersion finds the device's model version in a lower-cased
// name: the first numeric token, skipping any number that directly
// follows an "api" token so an API level is never mistaken for a model
// version. A single trailing letter on a numeric token ("16e") is
// dropped. Returns 0 when no version is present.
func extractVersion(lowered string) int {
	tokens := strings.FieldsFunc(lowered, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	prevWasAPI := false
	for _, tok := range tokens {
		if tok == "api" {
			prevWasAPI = true
			continue
		}
		if n, ok := parseVersionToken(tok); ok {
			if prevWasAPI {
				prevWasAPI = false
				continue
			}
			return n
		}
		prevWasAPI = false
	}
	return 0
}

// parseVersionToken accepts digit runs ("7", "34") and digit runs with
// one trailing letter ("16e"), which order the same as the bare number.
func parseVersionToken(tok string) (int, bool) {
	if tok == "" {
		return 0, false
	}
	digits := tok
	last := tok[len(tok)-1]
	if last >= 'a' && last <= 'z' {
		digits = tok[:len(tok)-1]
	}
	if digits == "" {
		return 0, false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}

// versionBonus maps a version to an offset within its family base so
// newer versions sort earlier. Unversioned names sort last in family.
func versionBonus(version int) int {
	if version <= 0 {
		return versionCeiling
	}
	if version >= versionCeiling {
		return 0
	}
	return versionCeiling - version
}

// AndroidPriority computes the display priority for an Android device
// from its identifier and name. Lower sorts earlier. Pixel devices
// lead, newest first, followed by other phones, then tablets, TVs,
// wearables, and automotive profiles.
func AndroidPriority(id, name string) int {
	combined := strings.ToLower(id + " " + name)
	version := extractVersion(combined)

	if strings.Contains(combined, "pixel") && Categorize(id, name) == CategoryPhone {
		if version > 0 {
			if version >= 20 {
				return 0
			}
			return 20 - version
		}
		return priorityPixelUnversioned
	}

	var base int
	switch Categorize(id, name) {
	case CategoryPhone:
		base = basePhone
	case CategoryTablet:
		base = baseTablet
	case CategoryTV:
		base = baseTV
	case CategoryWear:
		base = baseWear
	case CategoryAutomotive:
		base = baseAutomotive
	default:
		base = baseOther
	}
	return base + versionBonus(version)
}

// IOSPriority computes the display priority for an iOS simulator from
// its display name. Lower sorts earlier. iPhones lead (Pro Max before
// Pro before the rest), then iPads, Apple TVs, and Apple Watches.
func IOSPriority(name string) int {
	lowered := strings.ToLower(name)

	switch {
	case strings.Contains(lowered, "iphone"):
		return iphonePriority(lowered)
	case strings.Contains(lowered, "ipad"):
		return ipadPriority(lowered)
	case strings.Contains(lowered, "apple tv"):
		if strings.Contains(lowered, "4k") {
			return 200
		}
		return 210
	case strings.Contains(lowered, "watch"):
		return watchPriority(lowered)
	default:
		return priorityUnknown
	}
}

func iphonePriority(lowered string) int {
	switch {
	case strings.Contains(lowered, "pro max"):
		return 0
	case strings.Contains(lowered, "pro"):
		return 10
	case strings.Contains(lowered, "plus"), strings.Contains(lowered, "max"):
		return 20
	case strings.Contains(lowered, "mini"):
		return 30
	case strings.Contains(lowered, "se"):
		return 40
	}
	if v := extractVersion(lowered); v > 0 {
		if v > 30 {
			v = 30
		}
		return 50 - v
	}
	return 50
}

func ipadPriority(lowered string) int {
	switch {
	case strings.Contains(lowered, "pro") &&
		(strings.Contains(lowered, "12.9") || strings.Contains(lowered, "13")):
		return 100
	case strings.Contains(lowered, "pro") && strings.Contains(lowered, "11"):
		return 110
	case strings.Contains(lowered, "pro"):
		return 120
	case strings.Contains(lowered, "air"):
		return 130
	case strings.Contains(lowered, "mini"):
		return 140
	default:
		return 150
	}
}

func watchPriority(lowered string) int {
	switch {
	case strings.Contains(lowered, "ultra"):
		return 300
	case strings.Contains(lowered, "series"):
		if v := extractVersion(lowered); v > 0 {
			if v > 10 {
				v = 10
			}
			return 310 - v
		}
		return 320
	case strings.Contains(lowered, "se"):
		return 330
	default:
		return 340
	}
}

// SortAndroidDevices orders devices by priority, breaking ties by name
// so the ordering is deterministic.
func SortAndroidDevices(devices []*AndroidDevice) {
	sort.SliceStable(devices, func(i, j int) bool {
		pi := AndroidPriority(devices[i].AVDName, devices[i].AVDName)
		pj := AndroidPriority(devices[j].AVDName, devices[j].AVDName)
		if pi != pj {
			return pi < pj
		}
		return devices[i].AVDName < devices[j].AVDName
	})
}

// SortIOSDevices orders simulators by priority, breaking ties by name.
func SortIOSDevices(devices []*IOSDevice) {
	sort.SliceStable(devices, func(i, j int) bool {
		pi := IOSPriority(devices[i].DisplayName)
		pj := IOSPriority(devices[j].DisplayName)
		if pi != pj {
			return pi < pj
		}
		return devices[i].DisplayName < devices[j].DisplayName
	})
}
