package quiz

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/questions.yaml
var defaultBankYAML []byte

// DefaultBankFile is the file name searched for in the config directories.
const DefaultBankFile = "questions.yaml"

// yamlBank is the on-disk shape of a question bank.
type yamlBank struct {
	ID        string         `yaml:"id"`
	Title     string         `yaml:"title"`
	Questions []yamlQuestion `yaml:"questions"`
}

type yamlQuestion struct {
	Question string   `yaml:"question"`
	Options  []string `yaml:"options"`
	Answer   int      `yaml:"answer"`
	Hint     string   `yaml:"hint"`
}

// Parse decodes a YAML question bank. It does not validate the questions.
func Parse(data []byte) (*Bank, error) {
	var yb yamlBank
	if err := yaml.Unmarshal(data, &yb); err != nil {
		return nil, fmt.Errorf("quiz: yaml unmarshal: %w", err)
	}

	b := &Bank{
		ID:        yb.ID,
		Title:     yb.Title,
		Questions: make([]*Question, 0, len(yb.Questions)),
	}
	for _, yq := range yb.Questions {
		b.Questions = append(b.Questions, &Question{
			Text:    yq.Question,
			Options: yq.Options,
			Answer:  yq.Answer,
			Hint:    yq.Hint,
		})
	}
	if b.Title == "" {
		b.Title = b.ID
	}
	return b, nil
}

// Embedded returns the bank compiled into the binary.
func Embedded() (*Bank, error) {
	b, err := Parse(defaultBankYAML)
	if err != nil {
		return nil, err
	}
	if b.ID == "" {
		b.ID = "default"
	}
	return b, nil
}

// LoadFile reads one bank file. The bank ID defaults to the file name.
func LoadFile(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("quiz: read %s: %w", path, err)
	}
	b, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("quiz: parse %s: %w", path, err)
	}
	if b.ID == "" {
		b.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if b.Title == "" {
			b.Title = b.ID
		}
	}
	b.FilePath = path
	return b, nil
}

// Load resolves the question bank to play.
// Search order: customPath -> ~/.quizwalk/configs/questions.yaml -> ./configs/questions.yaml -> embedded default
func Load(customPath string) (*Bank, error) {
	if customPath != "" {
		return LoadFile(customPath)
	}

	if userPath := userConfigPath(DefaultBankFile); userPath != "" {
		if b, err := LoadFile(userPath); err == nil {
			return b, nil
		}
	}

	if b, err := LoadFile(filepath.Join("configs", DefaultBankFile)); err == nil {
		return b, nil
	}

	return Embedded()
}

// LoadDir loads every *.yaml / *.yml bank under root, recursively.
// Files that fail to parse are skipped. Results are sorted by ID.
func LoadDir(root string) ([]*Bank, error) {
	var banks []*Bank

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		b, err := LoadFile(path)
		if err != nil {
			return nil
		}
		banks = append(banks, b)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("quiz: scan %s: %w", root, err)
	}

	sort.Slice(banks, func(i, j int) bool {
		return banks[i].ID < banks[j].ID
	})
	return banks, nil
}

// Available returns the embedded bank followed by the user's banks in
// ~/.quizwalk/banks. A missing bank directory is not an error.
func Available() ([]*Bank, error) {
	def, err := Embedded()
	if err != nil {
		return nil, err
	}
	banks := []*Bank{def}

	dir := UserBankDir()
	if dir == "" {
		return banks, nil
	}
	if _, statErr := os.Stat(dir); statErr != nil {
		return banks, nil
	}

	user, err := LoadDir(dir)
	if err != nil {
		return banks, err
	}
	return append(banks, user...), nil
}

// UserBankDir returns ~/.quizwalk/banks, or empty if home is unavailable.
func UserBankDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".quizwalk", "banks")
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".quizwalk", "configs", filename)
}
