package editor

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// EnvEditor prepares an external editor command using $EDITOR (fallback: "vi").
// It does NOT run the editor itself; callers use tea.Exec with the returned
// *exec.Cmd so Bubble Tea properly suspends raw terminal mode.
type EnvEditor struct{}

// NewEnvEditor creates an EnvEditor.
func NewEnvEditor() *EnvEditor {
	return &EnvEditor{}
}

const instructionEnd = "-->"

func instructions(replyTo string) string {
	var b strings.Builder
	b.WriteString("<!--\n")
	if replyTo != "" {
		fmt.Fprintf(&b, "chirpterm: Replying to %s\n", replyTo)
	} else {
		b.WriteString("chirpterm: Write your reply below.\n")
	}
	b.WriteString("\n- SAVE and EXIT to post (e.g., :wq in vi).\n")
	b.WriteString("- Emptying the file cancels the reply.\n")
	b.WriteString(instructionEnd + "\n\n")
	return b.String()
}

// instructionComment is the template header when no target is known.
var instructionComment = instructions("")

// Cmd prepares an *exec.Cmd for the editor and a temp file path. The file
// starts with an instruction comment naming replyTo, followed by content.
func (e *EnvEditor) Cmd(content, replyTo string) (*exec.Cmd, string, error) {
	fields := strings.Fields(os.Getenv("EDITOR"))
	if len(fields) == 0 {
		fields = []string{"vi"}
	}

	tmpFile, err := os.CreateTemp("", "chirpterm-*.md")
	if err != nil {
		return nil, "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer tmpFile.Close()

	if _, err := tmpFile.WriteString(instructions(replyTo) + content); err != nil {
		os.Remove(tmpPath)
		return nil, "", fmt.Errorf("writing to temp file: %w", err)
	}

	args := append([]string{}, fields[1:]...)
	switch filepath.Base(fields[0]) {
	case "vi", "vim", "nvim":
		args = append(args, "+") // Open at the end of the file
	}
	args = append(args, tmpPath)
	return exec.Command(fields[0], args...), tmpPath, nil
}

// ReadContent reads the temp file, trims whitespace, and removes the file.
// It strips the instruction comment before returning.
func (e *EnvEditor) ReadContent(path string) (string, error) {
	defer os.Remove(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading temp file: %w", err)
	}

	content := string(data)
	if idx := strings.Index(content, instructionEnd); idx != -1 {
		content = content[idx+len(instructionEnd):]
	}
	return strings.TrimSpace(content), nil
}
