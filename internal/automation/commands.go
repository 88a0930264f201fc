package automation

import (
	"os"
	"os/exec"
	"runtime"
	"time"

	"github.com/jamesstrohm55/ALFRED/internal/logger"
)

// Action executes a system command and returns the spoken reply.
type Action func() string

// NewCommands builds the canonical command registry. musicPath may be
// empty when no music folder is configured.
func NewCommands(musicPath string, now func() time.Time) map[string]Action {
	if now == nil {
		now = time.Now
	}
	return map[string]Action{
		"open browser": func() string {
			if err := openWithDefault("https://www.google.com"); err != nil {
				logger.Error("Failed to open browser: %v", err)
				return "I couldn't open your browser."
			}
			return "Opening your browser, sir."
		},
		"open vs code": func() string {
			if err := exec.Command("code").Start(); err != nil {
				logger.Error("Failed to launch VS Code: %v", err)
				return "I couldn't launch Visual Studio Code."
			}
			return "Launching Visual Studio Code."
		},
		"tell time": func() string {
			return "The current time is " + now().Format("03:04 PM") + "."
		},
		"play music": func() string {
			if musicPath == "" {
				return "Music path not configured. Please set the music path in your config file."
			}
			if _, err := os.Stat(musicPath); err != nil {
				return "Music path not configured. Please set the music path in your config file."
			}
			if err := openWithDefault(musicPath); err != nil {
				logger.Error("Failed to play music: %v", err)
				return "I couldn't play your music."
			}
			return "Playing your favorite track."
		},
		"lock computer": func() string {
			if err := lockWorkstation(); err != nil {
				logger.Error("Failed to lock computer: %v", err)
				return "I couldn't lock your computer."
			}
			return "Locking your computer, sir."
		},
	}
}

func openWithDefault(target string) error {
	switch runtime.GOOS {
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", target).Start()
	case "darwin":
		return exec.Command("open", target).Start()
	default:
		return exec.Command("xdg-open", target).Start()
	}
}

func lockWorkstation() error {
	switch runtime.GOOS {
	case "windows":
		return exec.Command("rundll32.exe", "user32.dll,LockWorkStation").Run()
	case "darwin":
		return exec.Command("pmset", "displaysleepnow").Run()
	default:
		return exec.Command("loginctl", "lock-session").Run()
	}
}
