package commands

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	doc, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file should fall back to defaults, got: %v", err)
	}
	if doc.Model.Name != "llama2" {
		t.Errorf("expected default model llama2, got %q", doc.Model.Name)
	}
	if doc.Model.Temperature != 0.7 || doc.Model.TopP != 0.9 || doc.Model.MaxTokens != 500 {
		t.Errorf("unexpected default model settings: %+v", doc.Model)
	}
	for _, name := range []string{
		CmdGenerateVocabulary, CmdSupplementVocabulary, CmdGenerateWord,
		CmdGenerateOptions, CmdGenerateRoulette,
	} {
		if _, err := doc.Command(name); err != nil {
			t.Errorf("built-in document missing command %q", name)
		}
	}
}

func TestLoad_MalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "commands.yaml")
	if err := os.WriteFile(path, []byte("commands: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error for malformed file")
	}
}

func TestLoad_PartialModelSettingsFilled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "commands.yaml")
	content := "model:\n  name: mistral\ncommands:\n  - name: greet\n    prompt_template: 안녕 {name}\n    parameters:\n      - name: name\n        type: string\n        required: true\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := Load(path)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if doc.Model.Name != "mistral" {
		t.Errorf("expected configured model kept, got %q", doc.Model.Name)
	}
	if doc.Model.Temperature != 0.7 || doc.Model.MaxTokens != 500 {
		t.Errorf("expected gaps filled with defaults, got %+v", doc.Model)
	}
}

func TestRender_SubstitutesParameters(t *testing.T) {
	doc := DefaultDocument()

	prompt, err := doc.Render(CmdGenerateVocabulary, map[string]interface{}{
		"count":        10,
		"school_level": "중등",
		"difficulty":   "중간",
		"grade_range":  "7-9학년",
		"voca_id":      2,
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if !strings.Contains(prompt, "한국어로 10개 생성해주세요") {
		t.Errorf("count not substituted: %s", prompt)
	}
	if !strings.Contains(prompt, "중등 학생을 위한 중간 난이도") {
		t.Errorf("level and difficulty not substituted: %s", prompt)
	}
	if strings.Contains(prompt, "{") {
		t.Errorf("unresolved placeholder remains: %s", prompt)
	}
}

func TestRender_DefaultsCoverOmittedParameters(t *testing.T) {
	doc := DefaultDocument()

	prompt, err := doc.Render(CmdGenerateVocabulary, nil)
	if err != nil {
		t.Fatalf("expected defaults to fill everything, got: %v", err)
	}
	if !strings.Contains(prompt, "한국어로 10개") {
		t.Errorf("default count not applied: %s", prompt)
	}
}

func TestRender_MissingRequiredParameter(t *testing.T) {
	doc := DefaultDocument()

	_, err := doc.Render(CmdGenerateOptions, map[string]interface{}{"word": "apple"})
	if !errors.Is(err, ErrMissingParameter) {
		t.Fatalf("expected ErrMissingParameter, got: %v", err)
	}
	if !strings.Contains(err.Error(), "meaning") {
		t.Errorf("error should name the missing parameter: %v", err)
	}
}

func TestRender_UnknownCommand(t *testing.T) {
	doc := DefaultDocument()

	_, err := doc.Render("no_such_command", nil)
	if !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("expected ErrUnknownCommand, got: %v", err)
	}
}
