// Package boot holds the fixed table of Linux boot stages shown in the flowchart.
package boot

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when a step identifier is not part of the table.
var ErrNotFound = errors.New("boot: step not found")

// StepID identifies one of the seven boot stages ("1".."7").
type StepID string

// Step is the immutable record for a boot stage.
type Step struct {
	ID      StepID
	Title   string // detail panel heading
	Content string // detail panel body

	// Flowchart card presentation.
	Label   string
	Caption string
	Icon    string // font-awesome class, e.g. "fas fa-power-off"
	Accent  string // green | blue | purple
	TestID  string
}

// Row is the flowchart row a step is drawn in. The chart wraps after GRUB.
func (s Step) Row() int {
	if s.ID <= "4" {
		return 1
	}
	return 2
}

var steps = []Step{
	{
		ID:      "1",
		Title:   "Power On",
		Content: "When you press the power button, the CPU begins executing from a predefined memory address. The power supply unit (PSU) provides stable power to all components, and the CPU starts its first instruction fetch cycle.",
		Label:   "Power On",
		Caption: "CPU starts executing",
		Icon:    "fas fa-power-off",
		Accent:  "green",
		TestID:  "step-power-on",
	},
	{
		ID:      "2",
		Title:   "BIOS/UEFI Firmware",
		Content: "The firmware (BIOS or UEFI) is the first software that runs. It initializes hardware components, sets up basic system parameters, and prepares the system for the next boot stage. UEFI is more modern and secure than BIOS.",
		Label:   "BIOS/UEFI",
		Caption: "Firmware initialization",
		Icon:    "fas fa-microchip",
		Accent:  "blue",
		TestID:  "step-bios-uefi",
	},
	{
		ID:      "3",
		Title:   "POST (Power-On Self-Test)",
		Content: "POST performs a comprehensive hardware check including memory tests, CPU verification, storage device detection, and peripheral initialization. Any failures are reported through beep codes or error messages.",
		Label:   "POST",
		Caption: "Hardware verification",
		Icon:    "fas fa-check-circle",
		Accent:  "purple",
		TestID:  "step-post",
	},
	{
		ID:      "4",
		Title:   "GRUB Boot Loader",
		Content: "GRUB (GRand Unified Bootloader) presents a menu of available operating systems, loads the selected kernel into memory, and passes control to it. It can also load initial RAM disks (initramfs) containing essential drivers.",
		Label:   "GRUB",
		Caption: "Boot loader menu",
		Icon:    "fas fa-list",
		Accent:  "green",
		TestID:  "step-grub",
	},
	{
		ID:      "5",
		Title:   "Linux Kernel",
		Content: "The Linux kernel decompresses itself, initializes core subsystems (memory management, process scheduling, device drivers), mounts the root filesystem, and prepares the userspace environment.",
		Label:   "Kernel",
		Caption: "Linux kernel loads",
		Icon:    "fab fa-linux",
		Accent:  "blue",
		TestID:  "step-kernel",
	},
	{
		ID:      "6",
		Title:   "systemd Init System",
		Content: "systemd is the first userspace process (PID 1) that starts all other services and processes. It manages service dependencies, handles system targets (runlevels), and orchestrates the boot process to reach the desired system state.",
		Label:   "systemd",
		Caption: "Init system starts",
		Icon:    "fas fa-cogs",
		Accent:  "purple",
		TestID:  "step-systemd",
	},
	{
		ID:      "7",
		Title:   "Desktop Environment",
		Content: "The display manager starts the graphical environment, presents the login screen, and after authentication, launches the desktop environment (GNOME, KDE, XFCE, etc.) providing the user interface.",
		Label:   "Desktop",
		Caption: "User interface ready",
		Icon:    "fas fa-desktop",
		Accent:  "green",
		TestID:  "step-desktop",
	},
}

var byID = func() map[StepID]Step {
	m := make(map[StepID]Step, len(steps))
	for _, s := range steps {
		m[s.ID] = s
	}
	return m
}()

// All returns the steps in boot order. The slice is a copy.
func All() []Step {
	out := make([]Step, len(steps))
	copy(out, steps)
	return out
}

// IDs returns the known identifiers in boot order.
func IDs() []StepID {
	out := make([]StepID, 0, len(steps))
	for _, s := range steps {
		out = append(out, s.ID)
	}
	return out
}

// Lookup returns the record for id. The boolean is false for unknown ids.
func Lookup(id StepID) (Step, bool) {
	s, ok := byID[id]
	return s, ok
}

// Get is Lookup with an error result for callers that propagate errors.
func Get(id StepID) (Step, error) {
	if s, ok := Lookup(id); ok {
		return s, nil
	}
	return Step{}, ErrNotFound
}

// Valid reports whether id names a known step.
func Valid(id StepID) bool {
	_, ok := byID[id]
	return ok
}

// Normalize trims whitespace from raw input. It does not validate.
func Normalize(raw string) StepID {
	return StepID(strings.TrimSpace(raw))
}

// Count is the number of boot stages.
func Count() int { return len(steps) }
