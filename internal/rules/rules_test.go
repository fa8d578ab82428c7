package rules

import (
	"testing"

	"mclauncher/internal/models"
)

func osRule(action, name, arch string) models.Rule {
	return models.Rule{Action: action, OS: &models.OSRule{Name: name, Arch: arch}}
}

/**
 * Test last-matching-rule precedence
 * @description
 * - allow(windows) followed by deny(windows, x86)
 * - windows/x86 is excluded, windows/x64 is included
 */
func TestRulesAppliedInOrder(t *testing.T) {
	lib := models.Library{
		Name: "org.lwjgl:lwjgl:3.3.1",
		Rules: []models.Rule{
			osRule("allow", "windows", ""),
			osRule("deny", "windows", "x86"),
		},
	}
	if Included(lib, models.Platform{OSName: "windows", Arch: "x86"}) {
		t.Error("windows/x86 should be excluded by the later deny rule")
	}
	if !Included(lib, models.Platform{OSName: "windows", Arch: "x64"}) {
		t.Error("windows/x64 should be included")
	}
	// the failing windows/x86 predicate inverts the deny
	if !Included(lib, models.Platform{OSName: "linux", Arch: "x64"}) {
		t.Error("linux/x64 should be included")
	}
}

func TestEvaluate(t *testing.T) {
	win64 := models.Platform{OSName: "windows", Arch: "amd64"}
	mac := models.Platform{OSName: "darwin", Arch: "arm64", OSVersion: "10.5.8"}
	linux := models.Platform{OSName: "linux", Arch: "x86_64"}

	tests := []struct {
		name  string
		rules []models.Rule
		p     models.Platform
		want  bool
	}{
		{"no rules", nil, linux, true},
		{"unconditional allow", []models.Rule{{Action: "allow"}}, linux, true},
		{"empty action defaults to allow", []models.Rule{{}}, linux, true},
		{"allow then disallow osx on linux", []models.Rule{{Action: "allow"}, osRule("disallow", "osx", "")}, linux, true},
		{"allow then disallow osx on mac", []models.Rule{{Action: "allow"}, osRule("disallow", "osx", "")}, mac, false},
		{"allow only osx on windows", []models.Rule{osRule("allow", "osx", "")}, win64, false},
		{"allow only osx on mac", []models.Rule{osRule("allow", "osx", "")}, mac, true},
		{"deny only windows on linux", []models.Rule{osRule("deny", "windows", "")}, linux, true},
		{"deny only windows on windows", []models.Rule{osRule("deny", "windows", "")}, win64, false},
		{"allow windows deny windows x86 on linux", []models.Rule{osRule("allow", "windows", ""), osRule("deny", "windows", "x86")}, linux, true},
		{"deny then allow only osx on linux", []models.Rule{osRule("deny", "windows", ""), osRule("allow", "osx", "")}, linux, false},
		{"two allow rules second matches", []models.Rule{osRule("allow", "windows", ""), osRule("allow", "linux", "")}, linux, true},
		{"arch only predicate", []models.Rule{{Action: "allow"}, osRule("disallow", "", "x86")}, models.Platform{OSName: "linux", Arch: "i686"}, false},
		{
			"os version regex",
			[]models.Rule{{Action: "allow"}, {Action: "disallow", OS: &models.OSRule{Name: "osx", Version: `^10\.5\.\d$`}}},
			mac, false,
		},
		{
			"os version unknown does not match",
			[]models.Rule{{Action: "allow"}, {Action: "disallow", OS: &models.OSRule{Name: "osx", Version: `^10\.5\.\d$`}}},
			models.Platform{OSName: "osx", Arch: "x64"}, true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Evaluate(tt.rules, tt.p); got != tt.want {
				t.Errorf("Evaluate() = %v, want %v", got, tt.want)
			}
		})
	}
}
