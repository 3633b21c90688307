package repository

// orderClause builds an ORDER BY expression from user-supplied sort
// parameters. Only whitelisted columns are accepted; anything else falls
// back to created_at, and any direction other than ASC becomes DESC, so
// request input is never concatenated into SQL verbatim.
func orderClause(sortBy, sortOrder string, allowed map[string]struct{}) string {
	column := "created_at"
	if _, ok := allowed[sortBy]; ok {
		column = sortBy
	}
	direction := "DESC"
	if sortOrder == "ASC" || sortOrder == "asc" {
		direction = "ASC"
	}
	return column + " " + direction
}
