package services

// DescriptionOption is an activity description from the catalog. Resource
// type/id scope it to the labour activity it belongs to.
type DescriptionOption struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ResourceType string `json:"resource_type"`
	ResourceID   string `json:"resource_id"`
}

// DescriptionResourceType is the resource_type value descriptions carry when
// they are scoped to a labour activity.
const DescriptionResourceType = "labour_activity"

// FilterDescriptions returns the descriptions belonging to the given labour
// activity, in their original order. An empty activity id matches nothing.
func FilterDescriptions(all []DescriptionOption, labourActivityID string) []DescriptionOption {
	if labourActivityID == "" {
		return nil
	}
	var out []DescriptionOption
	for _, d := range all {
		if d.ResourceType == DescriptionResourceType && d.ResourceID == labourActivityID {
			out = append(out, d)
		}
	}
	return out
}
