package layer

// mergeLayerConfigs lays override on top of base. Non-empty override fields win;
// the name always comes from base.
func mergeLayerConfigs(base, override layerFileConfig) layerFileConfig {
	result := base

	if override.Key != "" {
		result.Key = override.Key
	}
	if override.Color != "" {
		result.Color = override.Color
	}
	if override.Default != nil {
		result.Default = override.Default
	}
	if override.Source.Type != "" {
		// a new source type replaces the whole source definition
		result.Source = override.Source
	} else {
		if override.Source.Path != "" {
			result.Source.Path = override.Source.Path
		}
		if override.Source.DSN != "" {
			result.Source.DSN = override.Source.DSN
		}
		if override.Source.Table != "" {
			result.Source.Table = override.Source.Table
		}
		if override.Source.IDColumn != "" {
			result.Source.IDColumn = override.Source.IDColumn
		}
	}
	if override.Filter != "" {
		result.Filter = override.Filter
	}
	if len(override.Columns) > 0 {
		result.Columns = override.Columns
	}
	if override.Time != nil {
		t := *override.Time
		if base.Time != nil {
			if t.Property == "" {
				t.Property = base.Time.Property
			}
			if t.Spec == "" {
				t.Spec = base.Time.Spec
			}
		}
		result.Time = &t
	}

	return result
}

// mergeLayers re-parses the merged definition of base and override. The
// result carries override's file path and config index; source paths stay
// relative to the file that named them.
func mergeLayers(base, override *Layer) (*Layer, error) {
	merged, err := parseLayerConfig(mergeLayerConfigs(base.config, override.config), override.FilePath)
	if err != nil {
		return nil, err
	}
	merged.ConfigIndex = override.ConfigIndex
	merged.baseDir = base.baseDir
	if override.config.Source.Path != "" || override.config.Source.Type != "" {
		merged.baseDir = override.baseDir
	}
	return merged, nil
}
