package device

import "testing"

func TestCategorize(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		deviceName string
		want       Category
	}{
		{"pixel phone", "pixel_7", "Pixel_7_API_34", CategoryPhone},
		{"pixel tablet beats phone brand", "pixel_tablet", "Pixel_Tablet_API_33", CategoryTablet},
		{"wear round", "wearos_small_round", "Wear_OS_Round_API_30", CategoryWear},
		{"android tv", "tv_1080p", "Android_TV_1080p", CategoryTV},
		{"automotive", "automotive_1024p_landscape", "Automotive_API_33", CategoryAutomotive},
		{"desktop", "desktop_medium", "Desktop_API_34", CategoryDesktop},
		{"unknown defaults to phone", "my_custom_avd", "My_Custom_AVD", CategoryPhone},
		{"foldable is a tablet", "pixel_fold", "Pixel_Fold_API_34", CategoryTablet},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Categorize(tt.id, tt.deviceName); got != tt.want {
				t.Errorf("Categorize(%q, %q) = %v, want %v", tt.id, tt.deviceName, got, tt.want)
			}
		})
	}
}

func TestExtractVersion(t *testing.T) {
	tests := []struct {
		name    string
		lowered string
		want    int
	}{
		{"simple number", "pixel 7", 7},
		{"underscored avd name", "pixel_7_api_34", 7},
		{"api level skipped", "pixel_api_33", 0},
		{"one letter suffix", "iphone 16e", 16},
		{"no number", "pixel tablet", 0},
		{"number after api skipped then next taken", "api 34 pixel 8", 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractVersion(tt.lowered); got != tt.want {
				t.Errorf("extractVersion(%q) = %d, want %d", tt.lowered, got, tt.want)
			}
		})
	}
}

// The numeric constants are internal; what matters is the relative
// ordering they induce.
func TestAndroidPriority_Ordering(t *testing.T) {
	pairs := []struct {
		name    string
		earlier string
		later   string
	}{
		{"newer pixel before older pixel", "Pixel_9_API_35", "Pixel_7_API_34"},
		{"versioned pixel before unversioned pixel", "Pixel_8_API_34", "Pixel_C_API_30"},
		{"pixel before other phone", "Pixel_7_API_34", "Galaxy_S24"},
		{"phone before tablet", "Galaxy_S24", "Pixel_Tablet_API_33"},
		{"tablet before tv", "Pixel_Tablet_API_33", "Android_TV_4K"},
		{"tv before wear", "Android_TV_4K", "Wear_OS_Round_API_30"},
		{"wear before automotive", "Wear_OS_Round_API_30", "Automotive_API_33"},
	}

	for _, tt := range pairs {
		t.Run(tt.name, func(t *testing.T) {
			pe := AndroidPriority(tt.earlier, tt.earlier)
			pl := AndroidPriority(tt.later, tt.later)
			if pe >= pl {
				t.Errorf("priority(%q) = %d, priority(%q) = %d, want the first strictly smaller",
					tt.earlier, pe, tt.later, pl)
			}
		})
	}
}

func TestIOSPriority_Ordering(t *testing.T) {
	pairs := []struct {
		name    string
		earlier string
		later   string
	}{
		{"pro max before pro", "iPhone 15 Pro Max", "iPhone 15 Pro"},
		{"pro before plus", "iPhone 15 Pro", "iPhone 15 Plus"},
		{"plus before mini", "iPhone 15 Plus", "iPhone 13 mini"},
		{"mini before se", "iPhone 13 mini", "iPhone SE (3rd generation)"},
		{"numbered before se", "iPhone 15", "iPhone SE (3rd generation)"},
		{"newer numbered before older", "iPhone 16", "iPhone 15"},
		{"letter suffix orders as bare number", "iPhone 16e", "iPhone 15"},
		{"iphone before ipad", "iPhone 15", "iPad Pro 11-inch (M4)"},
		{"large ipad pro before small ipad pro", "iPad Pro 13-inch (M4)", "iPad Pro 11-inch (M4)"},
		{"ipad pro before air", "iPad Pro 11-inch (M4)", "iPad Air 11-inch (M2)"},
		{"ipad air before mini", "iPad Air 11-inch (M2)", "iPad mini (6th generation)"},
		{"ipad mini before plain ipad", "iPad mini (6th generation)", "iPad (10th generation)"},
		{"ipad before apple tv", "iPad (10th generation)", "Apple TV 4K (3rd generation)"},
		{"tv 4k before tv", "Apple TV 4K (3rd generation)", "Apple TV"},
		{"tv before watch", "Apple TV", "Apple Watch Ultra 2 (49mm)"},
		{"watch series newer before older", "Apple Watch Series 9 (45mm)", "Apple Watch Series 7 (45mm)"},
		{"watch series before se", "Apple Watch Series 9 (45mm)", "Apple Watch SE (44mm)"},
	}

	for _, tt := range pairs {
		t.Run(tt.name, func(t *testing.T) {
			pe := IOSPriority(tt.earlier)
			pl := IOSPriority(tt.later)
			if pe >= pl {
				t.Errorf("priority(%q) = %d, priority(%q) = %d, want the first strictly smaller",
					tt.earlier, pe, tt.later, pl)
			}
		})
	}
}

func TestIOSPriority_UnknownSentinel(t *testing.T) {
	if got := IOSPriority("HomePod"); got != priorityUnknown {
		t.Errorf("IOSPriority(%q) = %d, want %d", "HomePod", got, priorityUnknown)
	}
}

func TestSortAndroidDevices(t *testing.T) {
	devices := []*AndroidDevice{
		{AVDName: "Wear_OS_Round_API_30"},
		{AVDName: "Pixel_Tablet_API_33"},
		{AVDName: "Pixel_7_API_34"},
		{AVDName: "Pixel_9_API_35"},
	}

	SortAndroidDevices(devices)

	want := []string{"Pixel_9_API_35", "Pixel_7_API_34", "Pixel_Tablet_API_33", "Wear_OS_Round_API_30"}
	for i, name := range want {
		if devices[i].AVDName != name {
			t.Errorf("devices[%d] = %q, want %q", i, devices[i].AVDName, name)
		}
	}
}

func TestSortIOSDevices(t *testing.T) {
	devices := []*IOSDevice{
		{DisplayName: "Apple Watch Series 9 (45mm)", UDID: "W"},
		{DisplayName: "iPad Air 11-inch (M2)", UDID: "A"},
		{DisplayName: "iPhone 15", UDID: "I"},
		{DisplayName: "iPhone 15 Pro Max", UDID: "P"},
	}

	SortIOSDevices(devices)

	want := []string{"iPhone 15 Pro Max", "iPhone 15", "iPad Air 11-inch (M2)", "Apple Watch Series 9 (45mm)"}
	for i, name := range want {
		if devices[i].DisplayName != name {
			t.Errorf("devices[%d] = %q, want %q", i, devices[i].DisplayName, name)
		}
	}
}
