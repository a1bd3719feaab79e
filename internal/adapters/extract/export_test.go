package extract_test

import "reflect"

func reflectTypeOfAuditing() reflect.Type {
	return reflect.TypeFor[auditing]()
}
