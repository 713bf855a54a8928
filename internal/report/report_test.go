package report

import (
	"bytes"
	"github.com/alvinbaena/pwd-analyzer/pkg/strength"
	"strings"
	"testing"
	"time"
)

func TestHash(t *testing.T) {
	want := "5e884898da28047151d0e56f8dc6292773603d0d6aabbdd62a11ef721d1542d8"
	if got := Hash("password"); got != want {
		t.Errorf("Hash: %s, want: %s", got, want)
	}
}

func TestPrinter_Print(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, Options{ShowHash: true})

	result := strength.Evaluate("password", strength.NewDictionary("password"))
	if err := printer.Print("password", result, 1500*time.Microsecond); err != nil {
		t.Fatalf("Print should not fail: %s", err)
	}

	out := buf.String()
	for _, want := range []string{
		"===== Analysis Result =====",
		"Password: password\n",
		"Score: 56/100\n",
		"Strength: Moderate\n",
		"Entropy: 37.6 bits\n",
		"Estimated Crack Time: Instant (Exact dictionary match)\n",
		"SHA-256 Hash: 5e884898da28047151d0e56f8dc6292773603d0d6aabbdd62a11ef721d1542d8\n",
		"- Add uppercase letters.\n- Add numbers.\n- Add special characters.\n- Increase password length.\n",
		"Analysis completed in 0.0015 seconds",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Report should contain %q:\n%s", want, out)
		}
	}

	if strings.Contains(out, "zxcvbn") {
		t.Errorf("Report should not contain the zxcvbn opinion unless asked:\n%s", out)
	}
}

func TestPrinter_NoSuggestions(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, Options{Zxcvbn: true})

	password := "xK9#mQ2$vL7@pR4!"
	if err := printer.Print(password, strength.Evaluate(password, nil), time.Millisecond); err != nil {
		t.Fatalf("Print should not fail: %s", err)
	}

	out := buf.String()
	for _, want := range []string{"No improvements needed.\n", "Entropy: 104.87 bits\n", "zxcvbn Score: "} {
		if !strings.Contains(out, want) {
			t.Errorf("Report should contain %q:\n%s", want, out)
		}
	}

	if strings.Contains(out, "SHA-256") {
		t.Errorf("Report should not contain the hash unless asked:\n%s", out)
	}
}

func TestPrinter_Color(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, Options{Color: true})

	if err := printer.Print("", strength.Evaluate("", nil), 0); err != nil {
		t.Fatalf("Print should not fail: %s", err)
	}

	if !strings.Contains(buf.String(), "\033[") {
		t.Errorf("Strength should be colored:\n%s", buf.String())
	}
}

func TestPrinter_Summary(t *testing.T) {
	var buf bytes.Buffer
	if err := NewPrinter(&buf, Options{}).Summary(1234, 1500*time.Millisecond); err != nil {
		t.Fatalf("Summary should not fail: %s", err)
	}

	if want := "1,234 passwords analyzed in 1.5s\n"; buf.String() != want {
		t.Errorf("Summary: %q, want: %q", buf.String(), want)
	}
}

func TestSecondOpinion(t *testing.T) {
	if got := SecondOpinion("password"); got.Score != 0 {
		t.Errorf("SecondOpinion(password) score: %d, want: %d", got.Score, 0)
	}

	long := strings.Repeat("xK9#mQ2$vL7@pR4!", 10)
	got := SecondOpinion(long)
	if got.Score < 0 || got.Score > 4 || got.CrackTimeDisplay == "" {
		t.Errorf("SecondOpinion of a long password: %+v", got)
	}
}
