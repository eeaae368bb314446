package graph

import "testing"

func TestValidatePostInput(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		content  string
		messages []string
	}{
		{name: "valid", title: "Hello World", content: "Hello World"},
		{name: "short title", title: "Hi", content: "Hello World", messages: []string{"Title is invalid."}},
		{name: "short content", title: "Hello World", content: "Hey", messages: []string{"Content is invalid."}},
		{name: "both empty", title: "", content: "", messages: []string{"Title is invalid.", "Content is invalid."}},
		{name: "whitespace only", title: "      ", content: "Hello World", messages: []string{"Title is invalid."}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := validatePostInput(tt.title, tt.content)
			if len(errs) != len(tt.messages) {
				t.Fatalf("got %d errors %v, want %d", len(errs), errs, len(tt.messages))
			}
			for i, want := range tt.messages {
				if errs[i].Message != want {
					t.Errorf("errs[%d] = %q, want %q", i, errs[i].Message, want)
				}
			}
		})
	}
}

func TestValidateUserInput(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		messages []string
	}{
		{name: "valid", email: "tess@example.com", password: "secret"},
		{name: "bad email", email: "not-an-email", password: "secret", messages: []string{"E-Mail is invalid."}},
		{name: "short password", email: "tess@example.com", password: "abc", messages: []string{"Password too short!"}},
		{name: "password of spaces", email: "tess@example.com", password: "        ", messages: []string{"Password too short!"}},
		{name: "both invalid", email: "", password: "", messages: []string{"E-Mail is invalid.", "Password too short!"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := validateUserInput(tt.email, tt.password)
			if len(errs) != len(tt.messages) {
				t.Fatalf("got %d errors %v, want %d", len(errs), errs, len(tt.messages))
			}
			for i, want := range tt.messages {
				if errs[i].Message != want {
					t.Errorf("errs[%d] = %q, want %q", i, errs[i].Message, want)
				}
			}
		})
	}
}
