package boardagent

// NoDevicesFound is the placeholder identifier handed to the host picker when
// enumeration yields nothing. It is accepted back by SetValue as a no-op but is
// never persisted as a selection.
const NoDevicesFound = "No Devices Found"

// Shared environment variable names. Downstream hosts should prefer these
// root-level constants when wiring boardagent into their environments.
const (
	// EnvDBPath overrides the settings database location
	// (default ~/.boardagent/settings.sqlite).
	EnvDBPath = "BOARDAGENT_DB_PATH"
	// EnvDeviceGlobs overrides the comma-separated device node patterns
	// scanned by the serial provider.
	EnvDeviceGlobs = "BOARDAGENT_DEVICE_GLOBS"
	// EnvInstallerBin overrides the package-manager executable invoked by the
	// dependency installer.
	EnvInstallerBin = "BOARDAGENT_INSTALLER_BIN"
	// EnvTemplatePackage overrides the project template package installed at
	// bootstrap.
	EnvTemplatePackage = "BOARDAGENT_TEMPLATE_PACKAGE"
)

// Installer defaults. The template package ships the project scaffolding the
// host toolchain expects to find after first run.
const (
	DefaultInstallerBin    = "dotnet"
	DefaultTemplatePackage = "WildernessLabs.Meadow.Template"
)
