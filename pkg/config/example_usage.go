package config

// Example usage of the configuration system:
//
// 1. Load configuration with all sources:
//
//     cfg, err := config.Load("", nil)
//     if err != nil {
//         log.Fatal(err)
//     }
//
// 2. Load with command line flags (keys are long flag names):
//
//     flags := map[string]interface{}{
//         "target-directory": "./icons",
//         "size":             96,
//         "concurrency":      4,
//         "no-cache":         true,
//     }
//     cfg, err := config.Load("/path/to/config.yaml", flags)
//
// 3. Environment variables use the ICONS8DL_ prefix followed by the section:
//
//     ICONS8DL_DOWNLOAD_SIZE=48
//     ICONS8DL_DOWNLOAD_CONCURRENCY=8
//     ICONS8DL_API_LANGUAGE=de-DE
//     ICONS8DL_CACHE_ENABLED=false
//     ICONS8DL_OUTPUT_TARGET_DIRECTORY=/srv/icons
//     ICONS8DL_LOG_LEVEL=debug
//
// 4. Example config file (~/.config/icons8dl/config.yaml):
//
//     api:
//       language: en-US
//       sort_by: mostDownloaded
//       timeout: 30s
//     download:
//       size: 512
//       concurrency: 10
//     cache:
//       enabled: true
//     output:
//       target_directory: ~/Downloads/icons
//       save_metadata: true
//       metadata_format: yaml
//     logging:
//       level: info
//       format: json
