package utils

import (
	"crypto/rand"
	"encoding/base64"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	yamlcomment "github.com/zijiren233/yaml-comment"
	"gopkg.in/yaml.v3"
)

func Exists(name string) bool {
	if _, err := os.Stat(name); err != nil {
		if os.IsNotExist(err) {
			return false
		}
	}
	return true
}

func WriteYaml(file string, module any) error {
	err := os.MkdirAll(filepath.Dir(file), os.ModePerm)
	if err != nil {
		return err
	}
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer f.Close()
	return yamlcomment.NewEncoder(yaml.NewEncoder(f)).Encode(module)
}

func ReadYaml(file string, module any) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()
	return yaml.NewDecoder(f).Decode(module)
}

// OptFilePath expands ~ and resolves relative paths against the working
// directory.
func OptFilePath(filePath string) (string, error) {
	if filePath == "" {
		return "", nil
	}
	p, err := homedir.Expand(filePath)
	if err != nil {
		return "", err
	}
	return filepath.Abs(p)
}

// RandToken returns n bytes from crypto/rand, base64 raw url encoded.
func RandToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
