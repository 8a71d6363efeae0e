package refnum

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Prefixes for daily-sequenced reference numbers. Sequences are scoped
// per day per prefix and allocated by the sequence repository.
const (
	PrefixAccount     = "ACC"
	PrefixJournal     = "JRN"
	PrefixLedger      = "LED"
	PrefixTransaction = "TXN"
	PrefixInvoice     = "INV"
	PrefixReceipt     = "RCT"
	PrefixWallet      = "WLT"
)

// Suffixes distinguishing the two ledger rows of a journal.
const (
	SuffixDebit  = "-D"
	SuffixCredit = "-C"
)

const dateLayout = "20060102"

// Format renders a reference number: {PREFIX}{YYYYMMDD}{6-digit zero-padded sequence}.
func Format(prefix string, date time.Time, sequence int64) string {
	return fmt.Sprintf("%s%s%06d", prefix, date.Format(dateLayout), sequence)
}

// DateKey renders the per-day sequence scope key for a date.
func DateKey(date time.Time) string {
	return date.Format(dateLayout)
}

// Parse splits a reference number back into prefix, date and sequence.
// Suffixes ("-D"/"-C") must be stripped by the caller first.
func Parse(ref string) (prefix string, date time.Time, sequence int64, err error) {
	if len(ref) < 3+len(dateLayout)+6 {
		return "", time.Time{}, 0, fmt.Errorf("reference number %q too short", ref)
	}
	prefix = ref[:len(ref)-len(dateLayout)-6]
	datePart := ref[len(prefix) : len(prefix)+len(dateLayout)]
	seqPart := ref[len(prefix)+len(dateLayout):]

	date, err = time.Parse(dateLayout, datePart)
	if err != nil {
		return "", time.Time{}, 0, fmt.Errorf("invalid date in reference number %q: %w", ref, err)
	}
	sequence, err = strconv.ParseInt(seqPart, 10, 64)
	if err != nil {
		return "", time.Time{}, 0, fmt.Errorf("invalid sequence in reference number %q: %w", ref, err)
	}
	return prefix, date, sequence, nil
}

// StripSuffix removes a trailing -D/-C marker, if present.
func StripSuffix(ref string) string {
	ref = strings.TrimSuffix(ref, SuffixDebit)
	return strings.TrimSuffix(ref, SuffixCredit)
}
