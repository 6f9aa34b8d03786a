package composer

import "time"

// Config carries every ceiling, poll interval, and settle pause the state
// machine uses. Tests inject shortened values; production uses Default()
// with optional overrides from the config file.
type Config struct {
	// Bounded waits for elements to mount.
	TextWait      time.Duration // text-entry surface
	FileInputWait time.Duration // file-input control

	// Upload preview polling.
	PreviewWait time.Duration
	PreviewPoll time.Duration

	// Schedule dialog polling.
	DialogWait time.Duration
	DialogPoll time.Duration

	// Post-submission confirmation polling.
	ConfirmWait time.Duration
	ConfirmPoll time.Duration

	// Settle pauses between steps; they absorb the UI's animation timing.
	TabSettle     time.Duration // after the composer tab opens
	TextSettle    time.Duration // after text injection
	UploadSettle  time.Duration // after the preview renders
	DialogSettle  time.Duration // after opening the dialog
	FieldSettle   time.Duration // after each field write
	FieldsSettle  time.Duration // after all six fields
	ConfirmSettle time.Duration // after the Confirm click
	SubmitDelay   time.Duration // before locating the final Schedule control
	SubmitSettle  time.Duration // after the final click
}

// Default returns the production timing profile.
func Default() Config {
	return Config{
		TextWait:      10 * time.Second,
		FileInputWait: 12 * time.Second,
		PreviewWait:   25 * time.Second,
		PreviewPoll:   600 * time.Millisecond,
		DialogWait:    10 * time.Second,
		DialogPoll:    300 * time.Millisecond,
		ConfirmWait:   15 * time.Second,
		ConfirmPoll:   400 * time.Millisecond,

		TabSettle:     time.Second,
		TextSettle:    500 * time.Millisecond,
		UploadSettle:  3 * time.Second,
		DialogSettle:  1500 * time.Millisecond,
		FieldSettle:   300 * time.Millisecond,
		FieldsSettle:  2 * time.Second,
		ConfirmSettle: 2 * time.Second,
		SubmitDelay:   1500 * time.Millisecond,
		SubmitSettle:  2 * time.Second,
	}
}
