package transport

import (
	"os"

	"golang.org/x/sys/windows"
)

func checkExecutable(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	// exec resolves the .exe suffix itself
	p, err := windows.UTF16PtrFromString(path + ".exe")
	if err != nil {
		return err
	}
	_, err = windows.GetFileAttributes(p)
	return err
}
