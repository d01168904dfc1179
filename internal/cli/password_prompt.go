package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

var errEmptyPassword = errors.New("password is required")

// promptPassword reads one line from in. A terminal is read without echo;
// piped input is read as is.
func promptPassword(in io.Reader, out io.Writer, label string) (string, error) {
	fmt.Fprint(out, label)

	var (
		password string
		err      error
	)
	if file, isFile := in.(*os.File); isFile && term.IsTerminal(int(file.Fd())) {
		password, err = readTerminalSecret(file)
		fmt.Fprintln(out)
	} else {
		password, err = readSecretLine(in)
	}
	if err != nil {
		return "", err
	}
	if password == "" {
		return "", errEmptyPassword
	}
	return password, nil
}

func readTerminalSecret(file *os.File) (string, error) {
	secret, err := term.ReadPassword(int(file.Fd()))
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimSpace(string(secret)), nil
}

func readSecretLine(in io.Reader) (string, error) {
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
