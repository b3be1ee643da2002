package importer

import (
	"io"
	"time"

	"github.com/tallybook/tally/internal/model"
)

// ChaseParser parses Chase checking exports:
//
//	Details,Posting Date,Description,Amount,Type,Balance,Check or Slip #
type ChaseParser struct{}

var chaseColumns = columns{
	bank: "chase", dateLayout: "01/02/2006", width: 7,
	date: 1, desc: 2, amount: 3, kind: 4,
}

// Format returns the parser name.
func (p *ChaseParser) Format() string { return chaseColumns.bank }

// Parse returns the export's rows in file order.
func (p *ChaseParser) Parse(r io.Reader) ([]model.BankTransaction, error) {
	return chaseColumns.parse(r)
}

// SimpleParser reads a minimal export with ISO dates. Columns past the
// third are ignored.
//
//	date,description,amount
type SimpleParser struct{}

var simpleColumns = columns{
	bank: "simple", dateLayout: time.DateOnly, width: -1,
	date: 0, desc: 1, amount: 2, kind: -1,
}

// Format returns the parser name.
func (p *SimpleParser) Format() string { return simpleColumns.bank }

// Parse returns the export's rows in file order.
func (p *SimpleParser) Parse(r io.Reader) ([]model.BankTransaction, error) {
	return simpleColumns.parse(r)
}
