package pgsql

import (
	"fmt"
	"strings"

	"github.com/SscSPs/banking_backoffice_app/internal/apperrors"
)

// recordSortColumns maps the sort keys accepted by the records listing to their columns.
// Keys are matched case-insensitively.
var recordSortColumns = map[string]string{
	"id":                "r.id",
	"timestamp":         "r.time_stamp",
	"operationtype":     "r.operation_type",
	"amount":            "r.amount",
	"userid":            "r.user_id",
	"accountid":         "r.account_id",
	"receiveraccountid": "r.receiver_account_id",
	"issuccessfull":     "r.is_successfull",
	"errormessage":      "r.error_message",
	"ispending":         "r.is_pending",
}

// buildRecordOrderBy turns "IsPending, Amount desc" into an ORDER BY clause. Blank input orders
// by id. The id column is always appended as a tiebreaker so paging is stable.
func buildRecordOrderBy(orderBy string) (string, error) {
	var parts []string
	for _, param := range strings.Split(orderBy, ",") {
		fields := strings.Fields(param)
		if len(fields) == 0 {
			continue
		}

		column, ok := recordSortColumns[strings.ToLower(fields[0])]
		if !ok {
			return "", fmt.Errorf("%w: Property %s does not exist on records", apperrors.ErrValidation, fields[0])
		}

		direction := "ASC"
		if len(fields) > 1 {
			switch strings.ToLower(fields[1]) {
			case "desc":
				direction = "DESC"
			case "asc":
			default:
				return "", fmt.Errorf("%w: invalid sort direction %q", apperrors.ErrValidation, fields[1])
			}
		}
		parts = append(parts, column+" "+direction)
	}

	parts = append(parts, "r.id ASC")
	return "ORDER BY " + strings.Join(parts, ", "), nil
}
