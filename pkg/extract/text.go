package extract

import "os"

// readText reads a plain-text file and normalizes it.
func readText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return Normalize(string(data)), nil
}
