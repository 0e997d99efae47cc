package domain

// A list of built-in config keys supported by the bot's core (settings of individual transports are declared next
// to the transports).

const (
	// ConfigKeyBotName the bot's nickname in chats; messages authored by this name are ignored
	ConfigKeyBotName = "botName"
	// ConfigKeyLogPath file path where to save the logs
	ConfigKeyLogPath = "logPath"
	// ConfigKeyImageDirectory the local working directory for original and annotated images
	ConfigKeyImageDirectory = "imageDirectory"
	// ConfigKeyKeepImages if false, local images are removed once the reply is sent
	ConfigKeyKeepImages = "keepImages"
	// ConfigKeyDescribeTopLabel if true, the reply is enriched with a short encyclopedia summary of the top label
	ConfigKeyDescribeTopLabel = "describeTopLabel"
	// ConfigKeyBucketName the object storage bucket where images are uploaded for analysis
	ConfigKeyBucketName = "bucketName"
	// ConfigKeyBucketPrefix the "folder" inside the bucket
	ConfigKeyBucketPrefix = "bucketPrefix"
	// ConfigKeyDownloadTimeout how long to wait for an attachment to download, in milliseconds
	ConfigKeyDownloadTimeout = "downloadTimeout"
	// ConfigKeyMaxDownloadSize the largest attachment (in bytes) we agree to download
	ConfigKeyMaxDownloadSize = "maxDownloadSize"
	// ConfigKeyMaxDetections the maximum number of objects the vision service should return per image
	ConfigKeyMaxDetections = "maxDetections"
	// ConfigKeyGoogleCredentialsFile path to a service account key; if empty, application default credentials are used
	ConfigKeyGoogleCredentialsFile = "googleCredentialsFile"
	// ConfigKeyVisionEndpoint overrides the vision API endpoint (useful for emulators and tests)
	ConfigKeyVisionEndpoint = "visionEndpoint"
	// ConfigKeyStorageEndpoint overrides the storage API endpoint (useful for emulators and tests)
	ConfigKeyStorageEndpoint = "storageEndpoint"
	// ConfigKeyLargeImageWidth images wider than this (in pixels) get the large font
	ConfigKeyLargeImageWidth = "largeImageWidth"
	// ConfigKeyLargeFontSize the label font size for large images
	ConfigKeyLargeFontSize = "largeFontSize"
	// ConfigKeySmallFontSize the label font size for other images
	ConfigKeySmallFontSize = "smallFontSize"
	// ConfigKeyStrokeWidthRatio box outline width relative to the image width
	ConfigKeyStrokeWidthRatio = "strokeWidthRatio"
	// ConfigKeyAccentColor the color of boxes and labels, as "#RRGGBB"
	ConfigKeyAccentColor = "accentColor"
)
