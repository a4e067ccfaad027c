// FILE: docsync/example/main.go
package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"docsync"
)

// Task is the object kept in sync with a YAML file.
type Task struct {
	Title  string         `yaml:"title"`
	Done   bool           `yaml:"done"`
	Points int            `yaml:"points"`
	Notes  string         `yaml:"notes" docsync:"markdown"`
	Extra  map[string]any `yaml:",inline"`
}

func main() {
	dir, err := os.MkdirTemp("", "docsync-example-")
	if err != nil {
		log.Fatalf("❌ Failed to create working directory: %v", err)
	}
	defer func() {
		log.Println("---")
		log.Println("🧹 Cleaning up...")
		os.RemoveAll(dir)
		log.Printf("Removed %s.", dir)
	}()

	// =========================================================================
	// PART 1: BINDING
	// Bind a struct to a file named after one of its attributes.
	// =========================================================================
	log.Println("---")
	log.Println("➡️  PART 1: Binding a task to its file...")

	builder := docsync.NewBuilder().
		WithPath(filepath.Join(dir, "tasks", "{title}.yml")). // Expanded once, at bind time.
		WithAttrs(
			docsync.A("title", docsync.String),
			docsync.A("done", docsync.Boolean),
			docsync.A("points", docsync.Integer),
			docsync.A("notes", docsync.Markdown),
		)

	task, err := docsync.Bind(builder, &Task{Title: "release", Points: 3})
	if err != nil {
		log.Fatalf("❌ Bind failed: %v", err)
	}
	m, _ := docsync.GetMapper(task)
	log.Printf("✅ Bound to %s (state: %s).", m.Path(), m.State())

	// =========================================================================
	// PART 2: WRITING
	// Every write through the mapper stores the file immediately.
	// =========================================================================
	log.Println("---")
	log.Println("➡️  PART 2: Writing attributes...")

	if err := docsync.Set(task, "points", "5"); err != nil {
		log.Fatalf("❌ Set failed: %v", err)
	}
	if err := docsync.Modify(task, func(t *Task) {
		t.Notes = "Tag the release. Publish the notes.\n\nAnnounce it."
	}); err != nil {
		log.Fatalf("❌ Modify failed: %v", err)
	}
	printFile(m)

	// =========================================================================
	// PART 3: WATCHING
	// Another program edits the file; the watcher reloads the task.
	// =========================================================================
	log.Println("---")
	log.Println("➡️  PART 3: Watching for external edits...")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes, err := m.Watch(ctx, docsync.WatchOptions{
		PollInterval: 250 * time.Millisecond,
		Debounce:     100 * time.Millisecond,
	})
	if err != nil {
		log.Fatalf("❌ Watch failed: %v", err)
	}
	defer m.StopWatch()

	var wg sync.WaitGroup
	wg.Add(1)
	go editFileExternally(&wg, m.Path())
	log.Println("   (Editor goroutine dispatched to change the file in 1 second...)")

	select {
	case name := <-changes:
		log.Printf("✅ Watcher reported a change of '%s'.", name)
	case <-time.After(5 * time.Second):
		log.Fatalf("❌ Timed out waiting for the watcher.")
	}
	wg.Wait()

	// The watcher may report several attributes; reading fetches anyway.
	done, err := docsync.GetAs[bool](task, "done")
	if err != nil {
		log.Fatalf("❌ GetAs failed: %v", err)
	}
	owner, _ := docsync.Get(task, "owner")
	log.Printf("✅ Reloaded: done=%t points=%d owner=%v", done, task.Points, owner)

	// =========================================================================
	// PART 4: DIAGNOSTICS
	// =========================================================================
	log.Println("---")
	log.Println("➡️  PART 4: Mapper diagnostics...")
	log.Print("\n" + m.Debug())
}

// editFileExternally rewrites the file the way a text editor would.
func editFileExternally(wg *sync.WaitGroup, path string) {
	defer wg.Done()
	time.Sleep(1 * time.Second)
	log.Println("   (Editor goroutine: now changing file on disk...)")

	text := "title: release\ndone: yes\npoints: 8\nnotes: Shipped.\nowner: ops\n"
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		log.Fatalf("❌ Editor failed to write file: %v", err)
	}
}

func printFile(m *docsync.Mapper) {
	text, err := m.Text()
	if err != nil {
		log.Fatalf("❌ Reading %s failed: %v", m.Path(), err)
	}
	log.Printf("✅ %s now reads:\n%s", filepath.Base(m.Path()), text)
}
