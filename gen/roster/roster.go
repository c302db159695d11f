// Package roster reads the order sheet that lists one personalized image per
// row and names the template bundle each row uses.
package roster

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nilapparel/nilgen/gen/common"
)

// ErrMissingColumn is returned when the header lacks a required column.
var ErrMissingColumn = errors.New("missing column")

// Column names of the order sheet
const (
	ColName      = "Name"
	ColTeam      = "Team"
	ColColorList = "Color List"
	ColArtType   = "Art Type"
	ColClass     = "Class"
	ColFirstName = "First Name"
	ColLastName  = "Last Name"
	ColJersey    = "Jersey Characters"
	ColSport     = "Sport Specific"
)

var requiredColumns = []string{ColName, ColTeam, ColColorList, ColArtType, ColClass, ColSport}

// Order is one row of the sheet with text already normalized for printing.
type Order struct {
	Line      int
	Name      string
	Team      string
	ColorList string
	ArtType   string
	Class     string
	FirstName string
	LastName  string
	Jersey    string
	Sport     string
}

// Parse reads every row. Names and sport are trimmed and upper-cased; the
// jersey is trimmed only.
func Parse(r io.Reader) ([]Order, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty sheet", ErrMissingColumn)
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	for _, col := range requiredColumns {
		if _, found := index[col]; !found {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, col)
		}
	}

	var orders []Order
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", line, err)
		}
		get := func(col string) string {
			if i, found := index[col]; found && i < len(record) {
				return strings.TrimSpace(record[i])
			}
			return ""
		}
		orders = append(orders, Order{
			Line:      line,
			Name:      get(ColName),
			Team:      get(ColTeam),
			ColorList: get(ColColorList),
			ArtType:   get(ColArtType),
			Class:     get(ColClass),
			FirstName: common.Upper(get(ColFirstName)),
			LastName:  common.Upper(get(ColLastName)),
			Jersey:    get(ColJersey),
			Sport:     common.Upper(get(ColSport)),
		})
	}
	return orders, nil
}

// ClassText is the part of Class after the second ": ", or the last part when
// there are fewer.
func (o Order) ClassText() string {
	parts := strings.Split(o.Class, ": ")
	if len(parts) > 2 {
		return parts[2]
	}
	return parts[len(parts)-1]
}

// Bundle is the template folder name: Team-Color List-Art Type-ClassText.
func (o Order) Bundle() string {
	return fmt.Sprintf("%s-%s-%s-%s", o.Team, o.ColorList, o.ArtType, o.ClassText())
}
