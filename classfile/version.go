package classfile

import "fmt"

const (
	MajorJava1_1 = 45
	MajorJava5   = 49
	MajorJava8   = 52
	MajorJava11  = 55
	MajorJava17  = 61
	MajorJava21  = 65
	MajorJava22  = 66

	// MinMajorVersion and MaxMajorVersion bound the accepted majors.
	MinMajorVersion = MajorJava1_1
	MaxMajorVersion = MajorJava22

	// Majors above MaxStableMajorVersion may only use minor 0 or PreviewMinorVersion.
	MaxStableMajorVersion = MajorJava11

	PreviewMinorVersion = 0xFFFF
)

type Version struct {
	Major uint16
	Minor uint16
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// IsPreview reports whether the class depends on preview features of its release.
func (v Version) IsPreview() bool {
	return v.Major > MaxStableMajorVersion && v.Minor == PreviewMinorVersion
}

// Release names the Java release that introduced the major version.
func (v Version) Release() string {
	switch {
	case v.Major < MajorJava1_1:
		return "unknown"
	case v.Major < MajorJava5:
		return fmt.Sprintf("Java 1.%d", v.Major-44)
	default:
		return fmt.Sprintf("Java %d", v.Major-44)
	}
}

func (d *decoder) readVersion() (Version, error) {
	if err := need(d.data, 4, 4, "version"); err != nil {
		return Version{}, err
	}
	v := Version{
		Minor: readU2(d.data, 4),
		Major: readU2(d.data, 6),
	}
	d.log.Debugf("version: major=%d minor=%d", v.Major, v.Minor)

	switch {
	case v.Major < MinMajorVersion:
		return Version{}, decodeErrorf(6, ErrMajorVersionTooLow, "major %d below %d", v.Major, MinMajorVersion)
	case v.Major <= MaxStableMajorVersion:
		return v, nil
	case v.Major <= MaxMajorVersion:
		if v.Minor != 0 && v.Minor != PreviewMinorVersion {
			return Version{}, decodeErrorf(4, ErrInvalidMinorVersion, "minor %d with major %d", v.Minor, v.Major)
		}
		return v, nil
	default:
		return Version{}, decodeErrorf(6, ErrMajorVersionTooHigh, "major %d above %d", v.Major, MaxMajorVersion)
	}
}
