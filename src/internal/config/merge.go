package config

// MergeReserved moves the reserved cgroup of each list to index 0, dropping
// any other occurrence. Other entries keep their relative order, so calling it
// again changes nothing.
func (c *Config) MergeReserved() {
	for _, field := range Fields {
		if field.Kind != KindCgroupList {
			continue
		}
		list := field.list(c)
		*list = mergeReserved(*list, field.Reserved)
	}
}

func mergeReserved(list []string, reserved string) []string {
	merged := make([]string, 0, len(list)+1)
	merged = append(merged, reserved)
	for _, entry := range list {
		if entry != reserved {
			merged = append(merged, entry)
		}
	}
	return merged
}
