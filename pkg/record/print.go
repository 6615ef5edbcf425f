package record

import (
	"fmt"
	"io"
	"math"
	"sort"
	"time"

	as "github.com/aerospike/aerospike-client-go/v7"
)

const never = "never"

// BinNames returns the bin names of rec in sorted order.
func BinNames(rec *as.Record) []string {
	if rec == nil {
		return nil
	}
	names := make([]string, 0, len(rec.Bins))
	for name := range rec.Bins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// UserKey returns the user key of key, or "null" when the server didn't
// return it.
func UserKey(key *as.Key) string {
	if key == nil || key.Value() == nil {
		return "null"
	}
	return fmt.Sprintf("%v", key.Value())
}

// TTL renders the time to live of rec.
func TTL(rec *as.Record) string {
	if rec.Expiration == math.MaxUint32 {
		return never
	}
	return (time.Duration(rec.Expiration) * time.Second).String()
}

// PrintRecord writes key and rec the way every exercise shows a record.
// Either may be nil.
func PrintRecord(w io.Writer, key *as.Key, rec *as.Record) {
	fmt.Fprintln(w, "Key")
	if key == nil {
		fmt.Fprintln(w, "\tkey == null")
	} else {
		fmt.Fprintf(w, "\tNamespace: %s\n", key.Namespace())
		fmt.Fprintf(w, "\t      Set: %s\n", key.SetName())
		fmt.Fprintf(w, "\t      Key: %s\n", UserKey(key))
		fmt.Fprintf(w, "\t   Digest: %x\n", key.Digest())
	}
	fmt.Fprintln(w, "Record")
	if rec == nil {
		fmt.Fprintln(w, "\trecord == null")
		return
	}
	fmt.Fprintf(w, "\tGeneration: %d\n", rec.Generation)
	fmt.Fprintf(w, "\tExpiration: %d\n", rec.Expiration)
	fmt.Fprintf(w, "\t       TTL: %s\n", TTL(rec))
	fmt.Fprintln(w, "Bins")
	PrintBins(w, rec)
}

// PrintBins writes one "name = value" line per bin, sorted by name.
func PrintBins(w io.Writer, rec *as.Record) {
	if rec == nil {
		fmt.Fprintln(w, "\trecord == null")
		return
	}
	for _, name := range BinNames(rec) {
		fmt.Fprintf(w, "\t%s = %v\n", name, rec.Bins[name])
	}
}

// PrintAirport writes an airport record under an "Airport: IATA ICAO"
// header.
func PrintAirport(w io.Writer, rec *as.Record) {
	if rec == nil {
		fmt.Fprintln(w, "\trecord == null")
		return
	}
	fmt.Fprintf(w, "Airport: %v %v\n", rec.Bins["IATA"], rec.Bins["ICAO"])
	PrintBins(w, rec)
}
