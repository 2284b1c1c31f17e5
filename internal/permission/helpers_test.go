package permission_test

import directoryDatamodel "github.com/rowalls/uh-internal-project/internal/core/datamodel/directory"

func permissionDatamodelGroup(id int64) directoryDatamodel.Group {
	return directoryDatamodel.Group{ID: id, DistinguishedName: "CN=g,DC=edu", DisplayName: "g"}
}
