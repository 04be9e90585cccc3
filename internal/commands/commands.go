// Package commands loads the prompt-command document (commands.yaml)
// and renders prompt templates from it.
package commands

import (
	"errors"
	"fmt"
	"log"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownCommand   = errors.New("unknown command")
	ErrMissingParameter = errors.New("missing template parameter")
)

// Document is the parsed commands file: global model settings plus one
// entry per named prompt command.
type Document struct {
	Program  ProgramInfo   `yaml:"program"`
	Model    ModelSettings `yaml:"model"`
	Commands []Command     `yaml:"commands"`
}

type ProgramInfo struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

type ModelSettings struct {
	Name        string  `yaml:"name"`
	Temperature float64 `yaml:"temperature"`
	TopP        float64 `yaml:"top_p"`
	MaxTokens   int     `yaml:"max_tokens"`
}

type Command struct {
	Name           string      `yaml:"name"`
	Description    string      `yaml:"description"`
	PromptTemplate string      `yaml:"prompt_template"`
	Parameters     []Parameter `yaml:"parameters"`
}

type Parameter struct {
	Name        string      `yaml:"name"`
	Type        string      `yaml:"type"`
	Description string      `yaml:"description"`
	Default     interface{} `yaml:"default"`
	Required    bool        `yaml:"required"`
}

// Load reads the commands document from path. A missing file is not
// fatal: the built-in document (hard-coded model settings and prompt
// templates) is used instead. A file that exists but cannot be parsed
// is a configuration error.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("WARN: commands file %s not found, using built-in defaults", path)
			return DefaultDocument(), nil
		}
		return nil, fmt.Errorf("read commands file: %w", err)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse commands file %s: %w", path, err)
	}

	// Model settings may be partially specified; fill gaps from defaults.
	def := defaultModelSettings()
	if doc.Model.Name == "" {
		doc.Model.Name = def.Name
	}
	if doc.Model.Temperature == 0 {
		doc.Model.Temperature = def.Temperature
	}
	if doc.Model.TopP == 0 {
		doc.Model.TopP = def.TopP
	}
	if doc.Model.MaxTokens == 0 {
		doc.Model.MaxTokens = def.MaxTokens
	}

	return &doc, nil
}

// Command returns the named command or ErrUnknownCommand.
func (d *Document) Command(name string) (*Command, error) {
	for i := range d.Commands {
		if d.Commands[i].Name == name {
			return &d.Commands[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
}

var placeholderRe = regexp.MustCompile(`\{([a-zA-Z_][a-zA-Z0-9_]*)\}`)

// Render fills the named command's prompt template. Values come from
// params, falling back to each parameter's declared default. A
// placeholder with neither yields ErrMissingParameter.
func (d *Document) Render(name string, params map[string]interface{}) (string, error) {
	cmd, err := d.Command(name)
	if err != nil {
		return "", err
	}

	values := make(map[string]string)
	for _, p := range cmd.Parameters {
		if p.Default != nil {
			values[p.Name] = fmt.Sprint(p.Default)
		}
	}
	for k, v := range params {
		values[k] = fmt.Sprint(v)
	}

	var missing string
	rendered := placeholderRe.ReplaceAllStringFunc(cmd.PromptTemplate, func(m string) string {
		key := placeholderRe.FindStringSubmatch(m)[1]
		v, ok := values[key]
		if !ok {
			if missing == "" {
				missing = key
			}
			return m
		}
		return v
	})
	if missing != "" {
		return "", fmt.Errorf("%w: %s (command %s)", ErrMissingParameter, missing, name)
	}

	return rendered, nil
}

func defaultModelSettings() ModelSettings {
	return ModelSettings{
		Name:        "llama2",
		Temperature: 0.7,
		TopP:        0.9,
		MaxTokens:   500,
	}
}

// DefaultDocument returns the built-in commands document used when no
// commands.yaml is present. Templates mirror the ones shipped in the
// repository's commands.yaml.
func DefaultDocument() *Document {
	return &Document{
		Program: ProgramInfo{
			Name:        "voca-gen",
			Description: "영어 단어 생성 프로그램",
		},
		Model: defaultModelSettings(),
		Commands: []Command{
			{
				Name:           CmdGenerateVocabulary,
				Description:    "학교 수준에 맞는 영어 단어 목록 생성",
				PromptTemplate: vocabularyTemplate,
				Parameters: []Parameter{
					{Name: "count", Type: "integer", Default: 10},
					{Name: "school_level", Type: "string", Default: "중등"},
					{Name: "difficulty", Type: "string", Default: "중간"},
					{Name: "grade_range", Type: "string", Default: "전체"},
					{Name: "voca_id", Type: "integer", Default: 1},
				},
			},
			{
				Name:           CmdSupplementVocabulary,
				Description:    "부족한 단어 추가 생성",
				PromptTemplate: supplementTemplate,
				Parameters: []Parameter{
					{Name: "count", Type: "integer", Required: true},
					{Name: "school_level", Type: "string", Default: "중등"},
					{Name: "difficulty", Type: "string", Default: "중간"},
					{Name: "grade_range", Type: "string", Default: "전체"},
					{Name: "voca_id", Type: "integer", Default: 1},
				},
			},
			{
				Name:           CmdGenerateWord,
				Description:    "영어 단어 한 개 생성",
				PromptTemplate: singleWordTemplate,
				Parameters: []Parameter{
					{Name: "voca_id", Type: "integer", Default: 1},
				},
			},
			{
				Name:           CmdGenerateOptions,
				Description:    "객관식 오답 선택지 생성",
				PromptTemplate: optionsTemplate,
				Parameters: []Parameter{
					{Name: "word", Type: "string", Required: true},
					{Name: "meaning", Type: "string", Required: true},
				},
			},
			{
				Name:           CmdGenerateRoulette,
				Description:    "룰렛 게임용 관련 단어 생성",
				PromptTemplate: rouletteTemplate,
				Parameters: []Parameter{
					{Name: "word", Type: "string", Required: true},
					{Name: "count", Type: "integer", Default: 8},
				},
			},
		},
	}
}

// Command names recognized by the generation service.
const (
	CmdGenerateVocabulary   = "generate_vocabulary"
	CmdSupplementVocabulary = "generate_vocabulary_supplement"
	CmdGenerateWord         = "generate_word"
	CmdGenerateOptions      = "generate_vocabulary_options"
	CmdGenerateRoulette     = "generate_roulette"
)

const vocabularyTemplate = `당신은 영어 단어를 생성하는 AI입니다. 사용자의 지시에 정확히 따라주세요.

{school_level} 학생을 위한 {difficulty} 난이도의 영어 단어와 그 의미를 한국어로 {count}개 생성해주세요. ({grade_range})
난이도 레벨: {voca_id}

각 단어는 반드시 다음 형식으로 작성해주세요:
단어: [영단어]
의미: [한국어 의미]

단어 사이에는 빈 줄을 넣어주세요. 설명이나 추가 텍스트를 포함하지 마세요.

예시:
단어: apple
의미: 사과

단어: book
의미: 책`

const supplementTemplate = `추가로 {count}개의 {school_level} 학생을 위한 {difficulty} 난이도의 영어 단어와 의미를 생성해주세요. ({grade_range})
난이도 레벨: {voca_id}

각 단어는 다음 형식으로 정확히 작성해주세요:
단어: [영단어]
의미: [한국어 의미]

단어 사이에는 빈 줄을 넣어주세요. 다른 설명이나 추가 텍스트 없이 위 형식만 사용해주세요.`

const singleWordTemplate = `초중고 학생을 위한 영어 단어와 그 의미를 한국어로 생성해주세요. 난이도 레벨: {voca_id}

다음 형식으로 작성해주세요:
단어: [영단어]
의미: [한국어 의미]`

const optionsTemplate = `영어 단어 '{word}'의 의미는 '{meaning}'입니다.
이 단어의 객관식 문제에 사용할 오답 선택지 3개를 생성해주세요.
정답 '{meaning}'과 같은 종류의 한국어 단어여야 합니다.
선택지는 쉼표로 구분하여 한 줄로만 작성해주세요. 다른 설명은 포함하지 마세요.

예시: 바나나, 오렌지, 포도`

const rouletteTemplate = `'{word}'와 관련된 한국어 단어를 {count}개 생성해주세요.
쉼표로 구분하여 한 줄로만 작성해주세요. 번호나 설명은 포함하지 마세요.`
