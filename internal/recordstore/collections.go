package recordstore

import (
	"fmt"
	"os"
)

// File names of the four hostel collections.
const (
	AttendanceFile     = "attendance.json"
	LeaveFile          = "leave.json"
	RoomsFile          = "rooms.json"
	WardenMessagesFile = "warden_messages.json"
)

// Collections bundles the stores that share one data directory.
type Collections struct {
	dir string

	Attendance     *Store
	Leave          *Store
	Rooms          *Store
	WardenMessages *Store
}

// Open builds the four collection stores rooted at dir.
func Open(dir string) *Collections {
	return &Collections{
		dir:            dir,
		Attendance:     New(Config{Dir: dir, File: AttendanceFile}),
		Leave:          New(Config{Dir: dir, File: LeaveFile}),
		Rooms:          New(Config{Dir: dir, File: RoomsFile}),
		WardenMessages: New(Config{Dir: dir, File: WardenMessagesFile}),
	}
}

// All returns the stores in a fixed order.
func (c *Collections) All() []*Store {
	return []*Store{c.Attendance, c.Leave, c.Rooms, c.WardenMessages}
}

// EnsureAll initializes every collection file.
func (c *Collections) EnsureAll() error {
	for _, s := range c.All() {
		if err := s.EnsureExists(); err != nil {
			return fmt.Errorf("ensure %s: %w", s.Name(), err)
		}
	}
	return nil
}

// Verify parses every collection and returns the first failure.
func (c *Collections) Verify() error {
	for _, s := range c.All() {
		if _, err := s.ListAll(); err != nil {
			return err
		}
	}
	return nil
}

// Check reports whether the data directory exists and accepts new files.
// Collection files are neither created nor modified.
func (c *Collections) Check() error {
	info, err := os.Stat(c.dir)
	if err != nil {
		return fmt.Errorf("stat data dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("data dir %s is not a directory", c.dir)
	}
	f, err := os.CreateTemp(c.dir, ".check-*")
	if err != nil {
		return fmt.Errorf("data dir not writable: %w", err)
	}
	name := f.Name()
	_ = f.Close()
	return os.Remove(name)
}
