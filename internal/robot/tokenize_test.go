package robot

import (
	"reflect"
	"strings"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    []string
	}{
		{"plain fields", "1,2,3", []string{"1", "2", "3"}},
		{"empty payload", "", nil},
		{"single field", "a", []string{"a"}},
		{"escapes drop backslash", `"a\"b","c\nd"`, []string{`a"b`, "cnd"}},
		{"quoted comma", `0,"Error reading, disc scratched"`, []string{"0", "Error reading, disc scratched"}},
		{"trailing comma", "a,", []string{"a", ""}},
		{"leading comma", ",a", []string{"", "a"}},
		{"only comma", ",", []string{"", ""}},
		{"empty quoted string", `""`, nil},
		{"empty quoted after field", `1,""`, []string{"1", ""}},
		{"unterminated quote", `1,"abc,def`, []string{"1", "abc,def"}},
		{"dangling backslash", `1,ab\`, []string{"1", "ab"}},
		{"escaped backslash", `a\\b`, []string{`a\b`}},
		{"escaped comma outside quotes", `a\,b,c`, []string{"a,b", "c"}},
		{"quotes mid-field", `ab"c,d"e`, []string{"abc,de"}},
		{"utf8 preserved", `0,"Ünïcödé – 日本"`, []string{"0", "Ünïcödé – 日本"}},
		{"whitespace kept", ` 1 , 2 `, []string{" 1 ", " 2 "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.payload)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Tokenize(%q) = %#v, want %#v", tt.payload, got, tt.want)
			}
		})
	}
}

func TestTokenizeRoundTrip(t *testing.T) {
	sequences := [][]string{
		{"1"},
		{"0", "2", "0", "Title 1"},
		{"a", "", "b"},
		{"", ""},
		{"5010", "0", "1", "Failed to open disc", "%1"},
		{"日本", "x y z", "00800.mpls"},
	}
	for _, fields := range sequences {
		joined := strings.Join(fields, ",")
		got := Tokenize(joined)
		if !reflect.DeepEqual(got, fields) {
			t.Errorf("Tokenize(%q) = %#v, want %#v", joined, got, fields)
		}
	}
}
